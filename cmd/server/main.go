package main

import "hrplus/internal/app/server"

func main() {
	server.Run()
}
