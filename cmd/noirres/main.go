package main

import (
	_ "github.com/qesmsep/noir-reserve/docs"

	"github.com/qesmsep/noir-reserve/cmd"
)

// @title Noir Reserve API
// @version 1.0
// @description Table assignment and availability API for a reservation-only dining room.
// @host localhost:8080
// @BasePath /
func main() {
	cmd.Execute()
}
