package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	code := run(ctx, os.Args[1:], streams{
		in:  os.Stdin,
		out: colorable.NewColorable(os.Stdout),
		err: colorable.NewColorableStderr(),
		tty: tty,
	})
	stop()
	os.Exit(code)
}
