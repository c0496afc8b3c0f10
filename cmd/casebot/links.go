package main

import (
	"fmt"

	"github.com/fwojciec/casebot"
	"github.com/fwojciec/casebot/fs"
)

// Run executes the links command.
func (c *LinksCmd) Run(deps *Dependencies) error {
	filter, err := casebot.NewURLFilter(c.Filter, c.Exclude)
	if err != nil {
		return err
	}

	urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL, filter)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return casebot.Errorf(casebot.ENOTFOUND, "no pages found in the sitemap of %s", c.URL)
	}

	if err := fs.WriteLinks(c.Out, urls); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d links to %s\n", len(urls), c.Out)
	return nil
}
