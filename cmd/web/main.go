package main

import "pushresume/internal/app"

func main() {
	app.Run()
}
