// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package experts

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/ffbrank/pkg/types"
)

// parseExperts reads the expert picker table of a rankings page. A row is an
// expert when it holds an input.expert checkbox; its first anchor is the
// expert name, the second the site, and its last cell the updated date.
// Rows missing either anchor or with a non-numeric id are skipped.
func parseExperts(doc *goquery.Document, timestamp time.Time) []types.Expert {
	var experts []types.Expert

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		input := row.Find("input.expert").First()
		if input.Length() == 0 {
			return
		}

		anchors := row.Find("a")
		if anchors.Length() < 2 {
			return
		}

		id, err := strconv.Atoi(strings.TrimSpace(input.AttrOr("value", "")))
		if err != nil {
			return
		}

		experts = append(experts, types.Expert{
			ID:          id,
			Name:        cleanText(anchors.Eq(0).Text()),
			Site:        cleanText(anchors.Eq(1).Text()),
			Checked:     isChecked(input),
			UpdatedDate: cleanText(row.Find("td").Last().Text()),
			Timestamp:   timestamp,
		})
	})

	return experts
}

// isChecked treats a bare checked attribute or checked="checked" as set.
func isChecked(input *goquery.Selection) bool {
	v, ok := input.Attr("checked")
	if !ok {
		return false
	}
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "" || v == "checked"
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
