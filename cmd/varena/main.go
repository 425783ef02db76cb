package main

import (
	"github.com/okradley/veilarena/internal/cli"
)

func main() {
	cli.Execute()
}
