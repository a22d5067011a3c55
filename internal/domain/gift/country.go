package gift

// DefaultCountry is the fallback when a request carries no country code or
// one outside the supported set.
const DefaultCountry = "AU"

// Country carries the per-country knowledge the pipeline needs: display
// name and currency symbol for prompts, familiar retailers for flavour,
// and the marketplace search base that purchase links are derived from.
type Country struct {
	Code      string
	Name      string
	Currency  string
	Retailers string
	SearchURL string
}

var countries = map[string]Country{
	"AU": {
		Code:      "AU",
		Name:      "Australia",
		Currency:  "A$",
		Retailers: "Amazon Australia, Kmart, Big W, The Iconic, Myer",
		SearchURL: "https://www.amazon.com.au/s?k=",
	},
	"GB": {
		Code:      "GB",
		Name:      "United Kingdom",
		Currency:  "£",
		Retailers: "Amazon UK, Etsy, Not On The High Street, John Lewis",
		SearchURL: "https://www.amazon.co.uk/s?k=",
	},
	"US": {
		Code:      "US",
		Name:      "United States",
		Currency:  "$",
		Retailers: "Amazon, Etsy, Target, Nordstrom",
		SearchURL: "https://www.amazon.com/s?k=",
	},
	"CA": {
		Code:      "CA",
		Name:      "Canada",
		Currency:  "C$",
		Retailers: "Amazon Canada, Indigo, Canadian Tire, Hudson's Bay",
		SearchURL: "https://www.amazon.ca/s?k=",
	},
	"IE": {
		Code:      "IE",
		Name:      "Ireland",
		Currency:  "€",
		Retailers: "Amazon, Etsy, Brown Thomas, Arnotts",
		SearchURL: "https://www.amazon.co.uk/s?k=",
	},
	"NZ": {
		Code:      "NZ",
		Name:      "New Zealand",
		Currency:  "NZ$",
		Retailers: "Amazon, The Warehouse, Mighty Ape, Farmers",
		SearchURL: "https://www.amazon.com.au/s?k=",
	},
	"ZA": {
		Code:      "ZA",
		Name:      "South Africa",
		Currency:  "R",
		Retailers: "Takealot, Superbalist, Mr Price, Woolworths",
		SearchURL: "https://www.takealot.com/all?qsearch=",
	},
	"IN": {
		Code:      "IN",
		Name:      "India",
		Currency:  "₹",
		Retailers: "Amazon India, Flipkart, Myntra, Nykaa",
		SearchURL: "https://www.amazon.in/s?k=",
	},
}

// ResolveCountry maps a 2-letter code to its Country, falling back to the
// default for empty or unrecognised codes.
func ResolveCountry(code string) Country {
	if c, ok := countries[code]; ok {
		return c
	}
	return countries[DefaultCountry]
}

// SupportedCountries returns the codes of the supported set.
func SupportedCountries() []string {
	codes := make([]string, 0, len(countries))
	for code := range countries {
		codes = append(codes, code)
	}
	return codes
}
