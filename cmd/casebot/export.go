package main

import (
	"fmt"

	"github.com/fwojciec/casebot/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	pages, err := loadCorpus(deps.Ctx, c.In, "enrich")
	if err != nil {
		return err
	}

	n, err := fs.NewExporter(c.Dir).Export(deps.Ctx, pages)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(deps.Stdout, "No enriched pages to export")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Exported %d pages to %s\n", n, c.Dir)
	return nil
}
