package generator

import (
	"fmt"
	mathrand "math/rand/v2"
	"strings"
)

// =============================================================================
// Fake Data — Identity
// =============================================================================

// fakeFirstNames contains common given names.
var fakeFirstNames = []string{
	"James", "Mary", "John", "Patricia", "Robert", "Jennifer",
	"Michael", "Linda", "David", "Elizabeth", "William", "Barbara",
	"Richard", "Susan", "Joseph", "Jessica", "Thomas", "Sarah",
	"Charles", "Karen", "Daniel", "Nancy", "Matthew", "Lisa",
}

// fakeLastNames contains common family names.
var fakeLastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia",
	"Miller", "Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez",
	"Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore",
	"Jackson", "Martin", "Lee", "Perez", "Thompson", "White",
}

// =============================================================================
// Fake Data — Address
// =============================================================================

// fakeStreetNames contains street names without suffixes.
var fakeStreetNames = []string{
	"Main", "Oak", "Elm", "Maple", "Cedar", "Pine", "Walnut",
	"Willow", "Park", "Lake", "Hill", "River", "Sunset", "Highland",
	"Meadow", "Forest", "Spring", "Church", "Mill", "Washington",
}

// fakeStreetSuffixes contains street type suffixes.
var fakeStreetSuffixes = []string{
	"St", "Ave", "Blvd", "Dr", "Ln", "Rd", "Way", "Ct", "Pl", "Ter",
}

// fakeCities contains city names.
var fakeCities = []string{
	"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
	"Philadelphia", "San Antonio", "San Diego", "Dallas", "Austin",
	"Seattle", "Denver", "Boston", "Portland", "Nashville",
	"Atlanta", "Miami", "Minneapolis", "Detroit", "Baltimore",
}

// emailDomains contains domains safe for generated addresses.
var emailDomains = []string{
	"example.com", "example.org", "example.net",
}

// =============================================================================
// Fake Data — Prose
// =============================================================================

// fakeWordList contains lowercase filler words for word and paragraph
// generation.
var fakeWordList = []string{
	"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "theta",
	"lambda", "sigma", "omega", "river", "stone", "cloud", "ember",
	"frost", "grove", "harbor", "meadow", "summit", "valley",
	"amber", "cobalt", "crimson", "ivory", "jade", "onyx",
}

// fakeSentences contains short declarative sentences for paragraphs.
var fakeSentences = []string{
	"The quick brown fox jumps over the lazy dog.",
	"A gentle breeze drifted across the open field.",
	"The river wound slowly through the quiet valley.",
	"Morning light settled over the sleeping town.",
	"Distant hills faded into a soft gray haze.",
	"The old clock ticked steadily on the mantel.",
	"Leaves scattered along the empty garden path.",
	"A single lamp glowed in the farmhouse window.",
}

// =============================================================================
// Fake Value Builders
// =============================================================================

// fakeName generates a full person name.
func fakeName() string {
	return fakeFirstNames[mathrand.IntN(len(fakeFirstNames))] + " " +
		fakeLastNames[mathrand.IntN(len(fakeLastNames))]
}

// fakeAddress generates a street address line.
func fakeAddress() string {
	return fmt.Sprintf("%d %s %s",
		mathrand.IntN(9899)+100,
		fakeStreetNames[mathrand.IntN(len(fakeStreetNames))],
		fakeStreetSuffixes[mathrand.IntN(len(fakeStreetSuffixes))])
}

// fakeCity picks a city name.
func fakeCity() string {
	return fakeCities[mathrand.IntN(len(fakeCities))]
}

// fakeZip generates a 5-digit postal code.
func fakeZip() string {
	return fmt.Sprintf("%05d", mathrand.IntN(100000))
}

// fakeEmail generates an email address on a reserved example domain.
func fakeEmail() string {
	first := strings.ToLower(fakeFirstNames[mathrand.IntN(len(fakeFirstNames))])
	last := strings.ToLower(fakeLastNames[mathrand.IntN(len(fakeLastNames))])
	return fmt.Sprintf("%s.%s%d@%s",
		first, last, mathrand.IntN(100),
		emailDomains[mathrand.IntN(len(emailDomains))])
}

// fakePhone generates a phone number in +1-###-###-#### format.
func fakePhone() string {
	return fmt.Sprintf("+1-%03d-%03d-%04d",
		mathrand.IntN(900)+100, mathrand.IntN(900)+100, mathrand.IntN(10000))
}

// fakeNumber generates a 4-digit numeric code with a non-zero leading
// digit (the ^### pattern).
func fakeNumber() string {
	var sb strings.Builder
	sb.WriteByte(byte('1' + mathrand.IntN(9)))
	for i := 0; i < 3; i++ {
		sb.WriteByte(byte('0' + mathrand.IntN(10)))
	}
	return sb.String()
}

// fakeBoolean returns "true" or "false".
func fakeBoolean() string {
	if mathrand.IntN(2) == 0 {
		return "false"
	}
	return "true"
}

// fakeHexColor generates a lowercase hex color like #1fa3c2.
func fakeHexColor() string {
	return fmt.Sprintf("#%06x", mathrand.IntN(1<<24))
}

// fakeIPv4 generates a random IPv4 address.
func fakeIPv4() string {
	return fmt.Sprintf("%d.%d.%d.%d",
		mathrand.IntN(256), mathrand.IntN(256),
		mathrand.IntN(256), mathrand.IntN(256))
}

// fakeCreditCard generates a Luhn-valid 16-digit card number with a
// Visa-like prefix.
func fakeCreditCard() string {
	digits := make([]int, 16)
	digits[0] = 4
	for i := 1; i < 15; i++ {
		digits[i] = mathrand.IntN(10)
	}

	// Luhn check digit: double digits at even indices (odd positions
	// from the right in a 16-digit number).
	sum := 0
	for i := 0; i < 15; i++ {
		d := digits[i]
		if i%2 == 0 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	digits[15] = (10 - (sum % 10)) % 10

	var sb strings.Builder
	for _, d := range digits {
		sb.WriteByte(byte('0' + d))
	}
	return sb.String()
}

// fakeWords generates five random words joined by spaces.
func fakeWords() string {
	words := make([]string, 5)
	for i := range words {
		words[i] = fakeWordList[mathrand.IntN(len(fakeWordList))]
	}
	return strings.Join(words, " ")
}

// fakeParagraph generates a short prose paragraph of three sentences.
func fakeParagraph() string {
	sentences := make([]string, 3)
	for i := range sentences {
		sentences[i] = fakeSentences[mathrand.IntN(len(fakeSentences))]
	}
	return strings.Join(sentences, " ")
}
