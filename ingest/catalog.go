// backend/ingest/catalog.go
package ingest

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// CheckSourceListed scrapes the TLC trip-record data page and reports whether
// a download link for the given (taxi type, month) file is published yet. The
// page links every released file by name, so a substring match on the href is
// enough; file extension is ignored since the TLC has changed formats over
// the years.
func CheckSourceListed(pageURL, taxiType string, month time.Time) (bool, error) {
	log.Printf("Catalog: Checking %s for a %s file covering %04d-%02d\n",
		pageURL, taxiType, month.Year(), int(month.Month()))

	client := http.Client{Timeout: 20 * time.Second}
	res, err := client.Get(pageURL)
	if err != nil {
		return false, fmt.Errorf("failed to get catalog page %s: %w", pageURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return false, fmt.Errorf("failed to get catalog page %s: status code %d", pageURL, res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return false, fmt.Errorf("failed to parse HTML from %s: %w", pageURL, err)
	}

	needle := fmt.Sprintf("%s_tripdata_%04d-%02d", taxiType, month.Year(), int(month.Month()))
	found := false
	doc.Find("a[href]").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if strings.Contains(href, needle) {
			found = true
			return false
		}
		return true
	})

	if found {
		log.Printf("Catalog: Found published file matching %q.\n", needle)
	} else {
		log.Printf("Catalog: No published file matching %q on %s.\n", needle, pageURL)
	}
	return found, nil
}
