package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	musicbytes "github.com/cbegin/musicbytes-go"
)

func newWAVCommand(load loader) *cobra.Command {
	var (
		out     string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "wav FILE",
		Short: "Render FILE as a 44.1 kHz mono WAV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := load(args[0])
			if err != nil {
				return err
			}
			if err := musicbytes.WriteWAVFile(cmd.Context(), out, m, musicbytes.WithWorkers(workers)); err != nil {
				return fmt.Errorf("error creating '%s': %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully created '%s'\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "audio.wav", "output path")
	cmd.Flags().IntVar(&workers, "workers", 1, "tones rendered concurrently")
	return cmd
}

func newJSONCommand(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "json FILE",
		Short: "Print the tone frequencies of FILE as a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), musicbytes.JSONFrequencies(m))
			return nil
		},
	}
}

func newArduinoCommand(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "arduino FILE",
		Short: "Print up to 100 tone frequencies of FILE as an Arduino array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), musicbytes.ArduinoSource(m))
			return nil
		},
	}
}

func newMIDICommand(load loader) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "midi FILE",
		Short: "Write FILE as a Standard MIDI File",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := load(args[0])
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("error creating '%s': %w", out, err)
			}
			if err := musicbytes.WriteMIDI(f, m); err != nil {
				f.Close()
				return fmt.Errorf("error creating '%s': %w", out, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("error creating '%s': %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully created '%s'\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "audio.mid", "output path")
	return cmd
}

func newScalesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scales",
		Short: "List the built-in scales",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range musicbytes.ScaleNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
