package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	musicbytes "github.com/cbegin/musicbytes-go"
)

func newPlayCommand(load loader) *cobra.Command {
	var (
		loop    bool
		loops   int
		volume  float64
		workers int
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "play FILE",
		Short: "Play FILE through the default audio device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := load(args[0])
			if err != nil {
				return err
			}
			pl, err := musicbytes.NewPlayer(musicbytes.WithLoopPlayback(loop), musicbytes.WithRenderWorkers(workers))
			if err != nil {
				return err
			}
			pl.SetMasterVolume(volume)
			ch := pl.Watch()
			if err := pl.Play(cmd.Context(), m); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "playing %d tones at %d bpm\n", len(m.Units), m.BPM)

			loopCount := 0
			for {
				select {
				case <-cmd.Context().Done():
					return pl.Stop()
				case event := <-ch:
					switch event.Kind {
					case musicbytes.EventPlaybackEnded:
						fmt.Fprintln(out, "playback completed")
						pl.Wait()
						return nil
					case musicbytes.EventLoopCompleted:
						loopCount++
						fmt.Fprintf(out, "loop %d completed\n", loopCount)
						if loop && loops > 0 && loopCount >= loops {
							if err := pl.Stop(); err != nil {
								return err
							}
						}
					case musicbytes.EventToneStarted:
						if verbose {
							t := m.Units[event.ToneIndex]
							fmt.Fprintf(out, "tone %d: %.1f Hz %s vol %.2f\n", event.ToneIndex, t.Frequency, t.Duration, t.Volume)
						}
					}
				}
			}
		},
	}
	cmd.Flags().BoolVar(&loop, "loop", false, "loop playback; use with --loops to count then stop")
	cmd.Flags().IntVar(&loops, "loops", 3, "when --loop, stop after N loops (0 = loop forever)")
	cmd.Flags().Float64Var(&volume, "volume", 1.0, "master volume scalar")
	cmd.Flags().IntVar(&workers, "workers", 1, "tones rendered concurrently before playback")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print each tone as it starts")
	return cmd
}
