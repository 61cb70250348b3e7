package main

import "gymtrack_backend/internal/app"

func main() {
	app.Run()
}
