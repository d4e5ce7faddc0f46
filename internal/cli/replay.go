package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/phanxgames/awesomemap"
)

type replayOptions struct {
	width, height   float64
	contentW        float64
	contentH        float64
	fps             int
	maxFrames       int
	interceptorsOff bool
}

func newReplayCmd() *cobra.Command {
	opts := replayOptions{}
	cmd := &cobra.Command{
		Use:   "replay <script.json>",
		Short: "Run a gesture script against a headless map",
		Long: `Replay feeds the steps of a JSON script to a map without opening a window
and prints every snapshot the script records, followed by the final state.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			return runReplay(cmd, data, opts)
		},
	}
	cmd.Flags().Float64Var(&opts.width, "width", 800, "viewport width")
	cmd.Flags().Float64Var(&opts.height, "height", 600, "viewport height")
	cmd.Flags().Float64Var(&opts.contentW, "content-width", 0, "content width (0 disables bounds)")
	cmd.Flags().Float64Var(&opts.contentH, "content-height", 0, "content height (0 disables bounds)")
	cmd.Flags().IntVar(&opts.fps, "fps", 60, "simulated frames per second")
	cmd.Flags().IntVar(&opts.maxFrames, "max-frames", 10000, "give up after this many frames")
	cmd.Flags().BoolVar(&opts.interceptorsOff, "raw", false, "run without the default interceptors")
	return cmd
}

func runReplay(cmd *cobra.Command, script []byte, opts replayOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	runner, err := awesomemap.LoadScript(script)
	if err != nil {
		return err
	}
	if opts.fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", opts.fps)
	}

	plane := awesomemap.NewPlane(awesomemap.Rect{Width: opts.width, Height: opts.height})
	m := awesomemap.NewMap(plane, awesomemap.WithConfig(cfg), awesomemap.WithLogger(logger))
	defer m.Dispose()
	m.SetContentSize(awesomemap.Size{Width: opts.contentW, Height: opts.contentH})
	if !opts.interceptorsOff {
		installInterceptors(m)
	}

	runner.Attach(m)
	runner.SetFrameTime(time.Second / time.Duration(opts.fps))
	start := time.Now()
	for !runner.Done() && runner.Frame() < opts.maxFrames {
		if err := ctx.Err(); err != nil {
			return err
		}
		runner.Step()
	}
	if !runner.Done() {
		return fmt.Errorf("script did not finish within %d frames", opts.maxFrames)
	}
	logger.Debug("replay finished", "frames", runner.Frame(), "elapsed", time.Since(start).Round(time.Millisecond))

	printSnapshots(cmd.OutOrStdout(), runner.Snapshots(), runner.Frame(), m.State())
	return nil
}

// installInterceptors registers the interceptors both commands use.
func installInterceptors(m *awesomemap.Map) {
	m.AddInterceptor(&awesomemap.DoubleTapZoom{})
	m.AddInterceptor(&awesomemap.ReleaseMomentum{})
	m.AddInterceptor(&awesomemap.ScaleLimit{})
	m.AddInterceptor(&awesomemap.Boundary{Elastic: true})
}

func printSnapshots(w io.Writer, snaps []awesomemap.Snapshot, frames int, final awesomemap.TransformState) {
	for _, s := range snaps {
		fmt.Fprintf(w, "%-16s frame %5d  x=%9.2f y=%9.2f scale=%6.3f\n",
			s.Label, s.Frame, s.State.TranslateX, s.State.TranslateY, s.State.Scale)
	}
	fmt.Fprintf(w, "%-16s frame %5d  x=%9.2f y=%9.2f scale=%6.3f\n",
		"final", frames, final.TranslateX, final.TranslateY, final.Scale)
}
