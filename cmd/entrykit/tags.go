package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pbaille/entrykit/internal/comparison"
	"github.com/pbaille/entrykit/internal/domain"
	"github.com/pbaille/entrykit/internal/entry"
	"github.com/pbaille/entrykit/internal/ingredients"
	"github.com/pbaille/entrykit/internal/store"
	"github.com/pbaille/entrykit/internal/vanilla"
)

func checkKind(kind string) error {
	if kind != vanilla.ItemKind && kind != vanilla.FluidKind {
		return fmt.Errorf("unknown kind %q (want %s or %s)", kind, vanilla.ItemKind, vanilla.FluidKind)
	}
	return nil
}

func tagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <kind> <tag> <member>...",
		Short: "Append members to a tag, creating it if needed",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			if err := checkKind(kind); err != nil {
				return err
			}
			name, err := domain.ParseIdentifier(args[1])
			if err != nil {
				return fmt.Errorf("tag: %w", err)
			}
			members := make([]domain.Identifier, 0, len(args)-2)
			for _, raw := range args[2:] {
				id, err := domain.ParseIdentifier(raw)
				if err != nil {
					return fmt.Errorf("member: %w", err)
				}
				members = append(members, id)
			}

			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			tag, err := s.AddTagMembers(kind, name, members)
			if err != nil {
				return err
			}

			fmt.Printf("%s tag %s now has %d members\n", tag.Kind, tag.Name, tag.Members)
			return nil
		},
	})

	return cmd
}

func tagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List all tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			tags, err := s.ListTags()
			if err != nil {
				return err
			}

			if len(tags) == 0 {
				fmt.Println("No tags yet. Use 'entrykit tag add' to create one.")
				return nil
			}

			for _, t := range tags {
				fmt.Printf("%-6s %-40s %d\n", t.Kind, t.Name, t.Members)
			}
			return nil
		},
	}
}

func resolveCmd() *cobra.Command {
	var exact bool

	cmd := &cobra.Command{
		Use:   "resolve <kind> <tag>",
		Short: "Resolve a tag into an ingredient",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			if err := checkKind(kind); err != nil {
				return err
			}
			name, err := domain.ParseIdentifier(args[1])
			if err != nil {
				return fmt.Errorf("tag: %w", err)
			}

			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			_, kinds, err := bootstrap()
			if err != nil {
				return err
			}

			src := store.NewTagCache(s, cacheTTL).Source(kind)
			var ing entry.Ingredient
			if kind == vanilla.ItemKind {
				ing, err = ingredients.OfItemTag(src, kinds.Items, name)
			} else {
				ing, err = ingredients.OfFluidTag(src, kinds.Fluids, name)
			}
			if err != nil {
				return err
			}

			ctx := comparison.Fuzzy
			if exact {
				ctx = comparison.Exact
			}
			fmt.Printf("%s %s (%s hashes)\n", kind, name, ctx)
			printIngredient(0, ing, ctx)
			return nil
		},
	}

	cmd.Flags().BoolVar(&exact, "exact", false, "print exact instead of fuzzy hashes")
	return cmd
}
