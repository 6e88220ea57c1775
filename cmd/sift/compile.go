package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sieveql/sieve"
	"github.com/sieveql/sieve/ast"
	"github.com/sieveql/sieve/expr"
	"github.com/sieveql/sieve/schema"
)

func compileCmd() *cobra.Command {
	var (
		schemaPath string
		entity     string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "compile [params-json]",
		Short: "Compile filter params into a SQL predicate",
		Long: `Compile reads filter parameters as JSON (from the argument or stdin),
resolves them against the schema file and prints the parsed filter tree,
the sort list and the rendered SQL predicate.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if schemaPath != "" {
				cfg.Schema = schemaPath
			}
			if entity != "" {
				cfg.Entity = entity
			}
			if cfg.Entity == "" {
				return fmt.Errorf("no entity given (use --entity or set it in sift.yml)")
			}

			logger := zap.NewNop()
			if verbose {
				logger, err = zap.NewDevelopment()
				if err != nil {
					return err
				}
				defer func() { _ = logger.Sync() }()
			}

			registry, err := schema.LoadYAMLFile(cfg.Schema)
			if err != nil {
				return err
			}

			params, err := readParams(args)
			if err != nil {
				return err
			}

			sieveCfg := sieve.Config{
				OnlyPredicates:   cfg.Predicates.Only,
				ExceptPredicates: cfg.Predicates.Except,
				IgnoreErrors:     cfg.Predicates.IgnoreErrors,
				MaxDepth:         cfg.Predicates.MaxDepth,
				Logger:           logger,
			}

			root, sorts, err := sieve.Parse(params, cfg.Entity, registry, sieveCfg)
			if err != nil {
				return err
			}
			node, err := sieve.Compile(root, sieveCfg)
			if err != nil {
				return err
			}
			sql, sqlArgs, err := expr.ToSQL(node)
			if err != nil {
				return err
			}

			printGrouping(cmd.OutOrStdout(), root, 0)
			for _, s := range sorts {
				fmt.Fprintf(cmd.OutOrStdout(), "sort: %s %s\n", s.Attribute, s.Direction)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sql: %s\n", sql)
			fmt.Fprintf(cmd.OutOrStdout(), "args: %v\n", sqlArgs)
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to the schema YAML file")
	cmd.Flags().StringVar(&entity, "entity", "", "root entity to resolve attributes against")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func readParams(args []string) (map[string]any, error) {
	var data []byte
	var err error
	if len(args) == 1 {
		data = []byte(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read params from stdin: %w", err)
		}
	}

	var params map[string]any
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse params JSON: %w", err)
	}
	return params, nil
}

func printGrouping(w io.Writer, g ast.Grouping, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}
	fmt.Fprintf(w, "%sgroup (%s)\n", pad, g.Combinator)
	for _, c := range g.Conditions {
		fmt.Fprintf(w, "%s  condition: %v %s %v (%s)\n", pad, attributeNames(c), c.Predicate, c.Values, c.Combinator)
	}
	for _, child := range g.Groupings {
		printGrouping(w, child, indent+1)
	}
}

func attributeNames(c ast.Condition) []string {
	names := make([]string, 0, len(c.Attributes))
	for _, a := range c.Attributes {
		names = append(names, a.String())
	}
	return names
}
