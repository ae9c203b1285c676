package main

import "github.com/Hbollas/LashTechBooking/cmd"

func main() {
	cmd.Execute()
}
