package main

import (
	"github.com/Mimic360/Payroll-ETL-Project/cmd"
)

func main() {
	cmd.Execute()
}
