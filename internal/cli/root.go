package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	musicbytes "github.com/cbegin/musicbytes-go"
)

const defaultScale = "c-major"

// NewRootCommand builds the command tree. Each call returns a fresh tree so
// tests can run commands in isolation.
func NewRootCommand() *cobra.Command {
	var scaleName string
	root := &cobra.Command{
		Use:           "musicbytes",
		Short:         "Turn any file into music",
		Long:          `musicbytes reads a file as a bitstream of note records and renders it as WAV audio, MIDI, or frequency tables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&scaleName, "scale", envOr("MUSICBYTES_SCALE", defaultScale), "pitch mapping scale (see `musicbytes scales`)")

	load := func(path string) (*musicbytes.Melody, error) {
		mapper, err := musicbytes.ScaleMapper(scaleName)
		if err != nil {
			return nil, err
		}
		return musicbytes.DecodeFile(path, mapper)
	}

	root.AddCommand(
		newWAVCommand(load),
		newJSONCommand(load),
		newArduinoCommand(load),
		newMIDICommand(load),
		newPlayCommand(load),
		newServeCommand(),
		newScalesCommand(),
	)
	return root
}

type loader func(path string) (*musicbytes.Melody, error)

// Execute runs the command tree and exits non-zero on failure. An interrupt
// cancels the command context, which stops playback and the server.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cobra.CheckErr(NewRootCommand().ExecuteContext(ctx))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
