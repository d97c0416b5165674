package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/propfinder/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the JSON API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on")
	return cmd
}

func runServe(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	p, err := buildPipeline(database, cfg)
	if err != nil {
		return err
	}

	sources := func() []web.SourceInfo {
		infos := make([]web.SourceInfo, 0, len(p.sources))
		for _, src := range p.sources {
			infos = append(infos, web.SourceInfo{
				Name:      src.Name(),
				Remaining: p.limiter.Remaining(src.Name()),
			})
		}
		return infos
	}

	server := web.NewServer(p.service, p.orch, sources)
	return server.ListenAndServe(port)
}
