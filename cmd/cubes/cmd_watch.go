package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/cubes/workspace"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <dir>",
		Short: "Re-solve record files under a directory whenever they change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			watchLog := commonlog.GetLogger("cubes.watch")
			out := cmd.OutOrStdout()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			ws := workspace.New(args[0], cfg.Workspace.Extensions...)
			fw := workspace.NewFileWatcher(ws,
				workspace.WithPollInterval(cfg.GetPollInterval()),
				workspace.OnChange(func(doc *workspace.Document) {
					sum, ok := doc.Summarize(cfg.Bag)
					if !ok {
						watchLog.Errorf("%s", doc.ParseErr)
						fmt.Fprintf(out, "%s: error: %s\n", doc.Path, doc.ParseErr)
						return
					}
					fmt.Fprintf(out, "%s: part1=%d part2=%d\n", doc.Path, sum.FeasibleSum, sum.PowerSum)
				}),
				workspace.OnRemove(func(path string) {
					watchLog.Infof("%s removed", path)
				}),
			)

			watchLog.Noticef("watching %s every %s", ws.RootDir(), cfg.GetPollInterval())
			fw.Start()
			<-ctx.Done()
			fw.Stop()
			return nil
		},
	}
}
