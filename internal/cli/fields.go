package cli

import (
	"github.com/spf13/cobra"

	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/extract"
)

var fieldsFamily string

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the output columns for a document family",
	RunE: func(cmd *cobra.Command, _ []string) error {
		family, err := extract.ParseFamily(fieldsFamily)
		if err != nil {
			return err
		}
		for _, c := range family.Columns() {
			cmd.Println(c)
		}
		return nil
	},
}

func init() {
	fieldsCmd.Flags().StringVarP(&fieldsFamily, "family", "f", string(extract.FamilyPRN), "document family (prn or grn)")
	rootCmd.AddCommand(fieldsCmd)
}
