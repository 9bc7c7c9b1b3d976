package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/latt-dev/latt/pkg/latfile"
	"github.com/latt-dev/latt/pkg/store"
)

// archiveCommand creates the archive command for pushing lattices to
// and fetching them from the configured MongoDB archive.
func (c *CLI) archiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Push and fetch lattices in the archive store",
		Long: `Push and fetch lattices in the archive store.

The archive keeps lattices in canonical text form keyed by utterance
ID, backed by MongoDB. Configure it with [mongo] uri in the config
file.`,
	}

	cmd.AddCommand(c.archivePushCommand())
	cmd.AddCommand(c.archiveGetCommand())
	cmd.AddCommand(c.archiveListCommand())

	return cmd
}

// openArchive connects to the configured archive backend.
func (c *CLI) openArchive(cmd *cobra.Command) (store.Store, error) {
	if c.Config.Mongo.URI == "" {
		return nil, fmt.Errorf("no archive configured: set [mongo] uri in the config file")
	}
	s, err := store.NewMongoStore(cmd.Context(), store.MongoConfig{
		URI:      c.Config.Mongo.URI,
		Database: c.Config.Mongo.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("connect archive: %w", err)
	}
	return s, nil
}

// archivePushCommand creates the "archive push" subcommand.
func (c *CLI) archivePushCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "push [file]",
		Short: "Store a lattice in the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := latfile.Load(args[0])
			if err != nil {
				return err
			}

			arch, err := c.openArchive(cmd)
			if err != nil {
				return err
			}
			defer arch.Close(cmd.Context())

			// Archive the canonical serialization, not the input bytes.
			var buf bytes.Buffer
			if err := latfile.Write(&buf, lat); err != nil {
				return err
			}

			rec := store.Record{
				UtteranceID: lat.ID(),
				Text:        buf.String(),
				NumNodes:    lat.NumNodes(),
				NumEdges:    lat.NumEdges(),
				StoredAt:    time.Now().UTC(),
			}
			if err := arch.Put(cmd.Context(), rec); err != nil {
				return fmt.Errorf("archive put: %w", err)
			}

			printSuccess("Archived %s", lat.ID())
			printStats(lat.NumNodes(), lat.NumEdges(), false)
			return nil
		},
	}
}

// archiveGetCommand creates the "archive get" subcommand.
func (c *CLI) archiveGetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get [utterance-id]",
		Short: "Fetch a lattice from the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arch, err := c.openArchive(cmd)
			if err != nil {
				return err
			}
			defer arch.Close(cmd.Context())

			rec, err := arch.Get(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("utterance %q is not archived", args[0])
				}
				return fmt.Errorf("archive get: %w", err)
			}

			if output == "" {
				fmt.Print(rec.Text)
				return nil
			}
			if err := os.WriteFile(output, []byte(rec.Text), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Fetched %s", rec.UtteranceID)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// archiveListCommand creates the "archive list" subcommand.
func (c *CLI) archiveListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived utterance IDs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			arch, err := c.openArchive(cmd)
			if err != nil {
				return err
			}
			defer arch.Close(cmd.Context())

			ids, err := arch.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("archive list: %w", err)
			}
			if len(ids) == 0 {
				printInfo("Archive is empty")
				return nil
			}
			for _, id := range ids {
				fmt.Println(id)
			}
			return nil
		},
	}
}
