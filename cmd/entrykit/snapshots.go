package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pbaille/entrykit/internal/codec"
	"github.com/pbaille/entrykit/internal/comparison"
	"github.com/pbaille/entrykit/internal/fixture"
	"github.com/pbaille/entrykit/internal/store"
	"github.com/pbaille/entrykit/internal/vanilla"
)

// loadFixture resolves a fixture file, falling back to stored tags for
// tags it does not define. The kinds it resolved against are returned for
// reuse.
func loadFixture(s *store.Store, path string) (*fixture.Resolved, *vanilla.Kinds, error) {
	doc, err := fixture.Load(path)
	if err != nil {
		return nil, nil, err
	}
	_, kinds, err := bootstrap()
	if err != nil {
		return nil, nil, err
	}

	tags := store.NewTagCache(s, cacheTTL)
	r := fixture.Resolver{
		Kinds:  kinds,
		Items:  tags.Source(vanilla.ItemKind),
		Fluids: tags.Source(vanilla.FluidKind),
	}
	res, err := r.Resolve(doc)
	if err != nil {
		return nil, nil, err
	}
	return res, kinds, nil
}

func printReport(report codec.Report) {
	for i, ing := range report.Ingredients {
		printIngredient(i, ing, comparison.Exact)
	}
	if len(report.Failures) > 0 {
		fmt.Printf("\n%d records skipped:\n", len(report.Failures))
		for _, f := range report.Failures {
			fmt.Printf("  - %v\n", f)
		}
	}
}

func encodeCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "encode <fixture.yaml>",
		Short: "Encode a fixture's ingredients as an NBT document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			res, _, err := loadFixture(s, args[0])
			if err != nil {
				return err
			}
			data, err := codec.Marshal(res.Ingredients)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("write document: %w", err)
			}

			fmt.Printf("Wrote %d ingredients (%d bytes) to %s\n", len(res.Ingredients), len(data), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	cmd.MarkFlagRequired("out")
	return cmd
}

func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <file.nbt>",
		Short: "Decode an NBT document and print its ingredients",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}
			registry, _, err := bootstrap()
			if err != nil {
				return err
			}

			report, err := codec.NewDecoder(registry, newLogger()).Unmarshal(data)
			if err != nil {
				return err
			}
			printReport(report)
			return nil
		},
	}
}

func saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <fixture.yaml>",
		Short: "Store a fixture's ingredients as a snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			res, _, err := loadFixture(s, args[1])
			if err != nil {
				return err
			}
			data, err := codec.Marshal(res.Ingredients)
			if err != nil {
				return err
			}
			snap, err := s.SaveSnapshot(args[0], len(res.Ingredients), data)
			if err != nil {
				return err
			}

			fmt.Printf("Saved snapshot: %s\n", snap.ID[:8])
			fmt.Printf("Ingredients: %d (%d bytes)\n", snap.Ingredients, snap.Size)
			return nil
		},
	}
}

func snapshotsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List recent snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			snaps, err := s.ListSnapshots(limit, 0)
			if err != nil {
				return err
			}

			if len(snaps) == 0 {
				fmt.Println("No snapshots yet. Use 'entrykit save' to create one.")
				return nil
			}

			for _, snap := range snaps {
				fmt.Printf("%s  %-24s %3d ingredients  %s\n",
					snap.ID[:8], snap.Name, snap.Ingredients, snap.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of snapshots to show")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id-prefix>",
		Short: "Decode and print a stored snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			snap, err := s.GetSnapshot(args[0])
			if err != nil {
				return err
			}
			registry, _, err := bootstrap()
			if err != nil {
				return err
			}
			report, err := codec.NewDecoder(registry, newLogger()).Unmarshal(snap.Data)
			if err != nil {
				return err
			}

			fmt.Printf("ID:      %s\n", snap.ID)
			fmt.Printf("Name:    %s\n", snap.Name)
			fmt.Printf("Created: %s\n", snap.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("Size:    %d bytes\n\n", snap.Size)
			printReport(report)
			return nil
		},
	}
}
