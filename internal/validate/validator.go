// Package validate decides whether a candidate page is the product a catalog
// record describes.
package validate

import (
	"bytes"
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/catalog-resolver/internal/fetch"
	"github.com/sells-group/catalog-resolver/internal/model"
)

// Validator checks one candidate URL against a record. A nil result with a
// nil error means the candidate was rejected.
type Validator interface {
	Validate(ctx context.Context, rec *model.CatalogRecord, candidateURL string) (*model.ValidationResult, error)
}

// PageFetcher retrieves candidate pages.
type PageFetcher interface {
	Fetch(ctx context.Context, targetURL string) (*fetch.Page, error)
}

// PageValidator fetches candidate pages and scores them.
type PageValidator struct {
	fetcher PageFetcher
}

// NewPageValidator creates a PageValidator.
func NewPageValidator(f PageFetcher) *PageValidator {
	return &PageValidator{fetcher: f}
}

// Validate fetches candidateURL and accepts it when the page identifies the
// record's product and brand. Fetch and parse failures are rejections; only
// context cancellation is returned as an error.
func (v *PageValidator) Validate(ctx context.Context, rec *model.CatalogRecord, candidateURL string) (*model.ValidationResult, error) {
	log := zap.L().With(zap.String("url", candidateURL))

	page, err := v.fetcher.Fetch(ctx, candidateURL)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, eris.Wrap(ctxErr, "validate: fetch candidate")
		}
		log.Debug("validate: candidate fetch failed", zap.Error(err))
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		log.Debug("validate: candidate parse failed", zap.Error(err))
		return nil, nil
	}

	res := Score(rec, doc, page.URL)
	if !Accept(res.ProductScore, res.BrandScore) {
		log.Debug("validate: candidate rejected",
			zap.Float64("product_score", res.ProductScore),
			zap.Float64("brand_score", res.BrandScore),
		)
		return nil, nil
	}

	res.ReviewURL = withFragment(res.CanonicalURL, FindReviewAnchor(doc))
	return res, nil
}

// Score computes the canonical URL and identity scores of a parsed page
// without applying the acceptance rule.
func Score(rec *model.CatalogRecord, doc *goquery.Document, pageURL string) *model.ValidationResult {
	identities := productIdentities(rec)
	brand := []string{rec.Brand}

	var productScore, brandScore float64
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		products, ok := ExtractProducts(s.Text())
		if !ok {
			return
		}
		for _, p := range products {
			productScore = max(productScore, bestSimilarity([]string{p.Name}, identities))
			brandScore = max(brandScore, bestSimilarity(p.Brands, brand))
		}
	})

	if productScore < usableProductScore {
		title := strings.TrimSpace(doc.Find("title").First().Text())
		productScore = max(productScore, bestSimilarity(titleSegments(title), identities))
	}

	if brandScore < MinBrandScore && hostContainsBrand(pageURL, rec.Brand) {
		brandScore = hostBrandScore
	}

	return &model.ValidationResult{
		CanonicalURL: canonicalURL(doc, pageURL),
		ProductScore: productScore,
		BrandScore:   brandScore,
	}
}

// productIdentities returns the forms a page may name the product by.
func productIdentities(rec *model.CatalogRecord) []string {
	name := strings.TrimSpace(rec.ProductName)
	if name == "" {
		return nil
	}
	ids := []string{name}
	if brand := strings.TrimSpace(rec.Brand); brand != "" {
		ids = append(ids, brand+" "+name)
	}
	return ids
}

var titleSeparators = regexp.MustCompile(`\s*[|\-–]\s*`)

// titleSegments returns the whole title plus each separator-delimited part.
func titleSegments(title string) []string {
	if title == "" {
		return nil
	}
	segs := []string{title}
	for _, part := range titleSeparators.Split(title, -1) {
		if part = strings.TrimSpace(part); part != "" && part != title {
			segs = append(segs, part)
		}
	}
	return segs
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// hostContainsBrand reports whether the page host contains the brand with
// whitespace removed, or with every non-alphanumeric removed.
func hostContainsBrand(pageURL, brand string) bool {
	u, err := url.Parse(pageURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	lower := strings.ToLower(brand)

	compact := strings.Join(strings.Fields(lower), "")
	if compact != "" && strings.Contains(host, compact) {
		return true
	}
	alnum := nonAlnum.ReplaceAllString(lower, "")
	return alnum != "" && strings.Contains(host, alnum)
}

// canonicalURL returns the page's rel=canonical link resolved against
// pageURL, or pageURL when there is none.
func canonicalURL(doc *goquery.Document, pageURL string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}

	canonical := pageURL
	doc.Find("link[rel][href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !hasToken(s.AttrOr("rel", ""), "canonical") {
			return true
		}
		ref, err := url.Parse(strings.TrimSpace(s.AttrOr("href", "")))
		if err != nil {
			return true
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return true
		}
		canonical = resolved.String()
		return false
	})
	return canonical
}

func hasToken(list, token string) bool {
	for _, f := range strings.Fields(list) {
		if strings.EqualFold(f, token) {
			return true
		}
	}
	return false
}
