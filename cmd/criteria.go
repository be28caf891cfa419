package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-scorer/internal/criteria"
)

var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Print the criteria a resume is scored against",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, err := getConfig()
		if err != nil {
			return err
		}

		set, err := loadCriteria(viper.GetViper(), config.CriteriaFile)
		if err != nil {
			return err
		}

		return listCriteria(cmd.OutOrStdout(), set)
	},
}

func init() {
	rootCmd.AddCommand(criteriaCmd)
}

func listCriteria(out io.Writer, set *criteria.Set) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKIND\tWEIGHT")
	for _, c := range set.Criteria() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Kind, strconv.FormatFloat(c.Weight, 'f', -1, 64))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	scale := set.Scale()
	_, err := fmt.Fprintf(out, "\ntotal weight: %.2f, scale: %s-%s\n",
		set.TotalWeight(),
		strconv.FormatFloat(scale.Min, 'f', -1, 64),
		strconv.FormatFloat(scale.Max, 'f', -1, 64),
	)
	return err
}
