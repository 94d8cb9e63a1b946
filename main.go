package main

import "github.com/Manu343726/regmap/cmd"

func main() {
	cmd.Execute()
}
