package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pbaille/entrykit/internal/comparison"
	"github.com/pbaille/entrykit/internal/fixture"
	"github.com/pbaille/entrykit/internal/recipes"
)

func recipesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recipes <fixture.yaml>",
		Short: "List a fixture's recipes in id order with their inputs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			res, kinds, err := loadFixture(s, args[0])
			if err != nil {
				return err
			}

			ctx := recipes.NewContext(recipes.ManagerFunc(func() []recipes.Recipe { return res.Recipes }))
			all := ctx.AllSorted()
			if len(all) == 0 {
				fmt.Println("No recipes in fixture.")
				return nil
			}

			for _, r := range all {
				fmt.Printf("%s -> %v\n", r.ID, r.Result)
				for i, ing := range r.Inputs(kinds.Items) {
					printIngredient(i, ing, comparison.Fuzzy)
				}
			}
			return nil
		},
	}
}

func schemaCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of fixture files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := fixture.SchemaJSON()
			if err != nil {
				return err
			}
			if out == "" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return fmt.Errorf("write schema: %w", err)
			}
			fmt.Printf("Wrote schema to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
