// Package main provides the CLI entry point for cellar.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spindleworks/cellar"
	"github.com/spindleworks/cellar/worksheet"
)

var (
	sheetName string
	namesOnly bool
	verbose   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cellar [workbook.xlsx]",
		Short: "Dump cell data from an OOXML spreadsheet",
		Long: `cellar opens an OOXML spreadsheet package, decodes its sheets and
shared strings, and prints the cell data as tab-separated rows.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&sheetName, "sheet", "s", "", "Dump only the named sheet")
	rootCmd.Flags().BoolVar(&namesOnly, "names", false, "List sheet names and exit")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log absorbed decoding problems")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	path := args[0]

	if !verbose {
		logrus.SetLevel(logrus.ErrorLevel)
	}

	report, err := cellar.Open(path)
	if err != nil {
		return err
	}
	defer cellar.Close(path)

	if verbose && !report.Clean() {
		fmt.Fprintf(os.Stderr, "%d problem(s) absorbed while decoding %s\n", len(report.Problems), path)
	}

	names, err := cellar.SheetNames(path)
	if err != nil {
		return err
	}

	if namesOnly {
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	if sheetName != "" {
		names = []string{sheetName}
	}

	for i, name := range names {
		if i > 0 {
			fmt.Println()
		}
		if err := dumpSheet(path, name); err != nil {
			return err
		}
	}
	return nil
}

// dumpSheet prints one sheet as tab-separated rows in row order, resolving
// shared-string cells against the document's table.
func dumpSheet(path, name string) error {
	sheet, err := cellar.Sheet(path, name)
	if err != nil {
		return err
	}

	fmt.Printf("=== %s ===\n", name)

	rowNums := make([]int, 0, len(sheet))
	for n := range sheet {
		rowNums = append(rowNums, n)
	}
	sort.Ints(rowNums)

	for _, n := range rowNums {
		row := sheet[n]
		cols := make([]string, 0, len(row))
		for col := range row {
			cols = append(cols, col)
		}
		sort.Strings(cols)

		fields := make([]string, 0, len(cols)+1)
		fields = append(fields, fmt.Sprintf("%d", n))
		for _, col := range cols {
			text, err := cellText(path, row[col])
			if err != nil {
				return err
			}
			fields = append(fields, text)
		}
		fmt.Println(strings.Join(fields, "\t"))
	}
	return nil
}

func cellText(path string, cell worksheet.Cell) (string, error) {
	if cell.Type != worksheet.CellTypeSharedString {
		return cell.Value, nil
	}
	idx, err := cell.SharedStringIndex()
	if err != nil {
		return "", err
	}
	return cellar.SharedString(path, idx)
}
