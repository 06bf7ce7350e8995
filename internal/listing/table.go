package listing

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ilearnics/internal/locale"
)

// ParseTable parses an already-fetched listing page into raw rows. Every
// <tr> carrying cells or an anchor becomes one RawRow: anchor fields come
// from the row's first <a href> (resolved against baseURL), cells from its
// <td> texts in column order. Deciding which rows are assignments is the
// Extractor's job, not this function's.
func ParseTable(r io.Reader, baseURL string) ([]RawRow, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing listing HTML: %w", err)
	}

	var base *url.URL
	if baseURL != "" {
		base, err = url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing base URL: %w", err)
		}
	}

	rows := make([]RawRow, 0)
	doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		var raw RawRow
		if a := tr.Find("a[href]").First(); a.Length() > 0 {
			raw.AnchorText = flattenText(a.Text())
			href, _ := a.Attr("href")
			raw.AnchorURL = resolveURL(base, href)
		}
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			raw.Cells = append(raw.Cells, flattenText(td.Text()))
		})
		// Header-only rows (<th> cells, no anchor) carry nothing usable.
		if raw.AnchorURL == "" && len(raw.Cells) == 0 {
			return
		}
		rows = append(rows, raw)
	})

	return rows, nil
}

// ParseDetailDue scans an assignment detail page for a due-label block and
// returns its text for normalization. Listing pages on some themes omit
// due times; the fetch glue then downloads the detail page and hands it
// here. The candidate is the labeled leaf element's enclosing block so a
// date in a sibling node is still captured.
func ParseDetailDue(r io.Reader, labels *locale.Set) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", false
	}

	candidate := ""
	doc.Find("*").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if sel.Children().Length() > 0 {
			return true
		}
		text := flattenText(sel.Text())
		if text == "" || !labels.MatchesDue(text) {
			return true
		}
		if block := flattenText(sel.Parent().Text()); block != "" {
			candidate = block
		} else {
			candidate = text
		}
		return false
	})

	if candidate == "" {
		// No labeled block; hand the whole page text to the normalizer,
		// mirroring the listing-row fallback.
		candidate = flattenText(doc.Find("body").Text())
	}
	if candidate == "" {
		return "", false
	}
	return candidate, true
}

// flattenText collapses all whitespace runs to single spaces and trims.
// Listing cells tend to carry newlines and indentation from templating.
func flattenText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}
