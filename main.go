package main

import "nms-extractor/cmd"

func main() {
	cmd.Execute()
}
