package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/advancify/lead-engine/internal/intake"
)

var processFile string

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the pipeline once for a lead submission read from a JSON file or stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEngine(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		in := os.Stdin
		if processFile != "" {
			f, err := os.Open(processFile)
			if err != nil {
				return eris.Wrapf(err, "open %s", processFile)
			}
			defer f.Close()
			in = f
		}

		lead, err := intake.NewValidator().Parse(in)
		if err != nil {
			return err
		}

		result, err := env.Engine.Process(cmd.Context(), &lead)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal result")
		}
		fmt.Println(string(out))

		return nil
	},
}

func init() {
	processCmd.Flags().StringVarP(&processFile, "file", "f", "", "lead submission JSON file (default stdin)")
	rootCmd.AddCommand(processCmd)
}
