// Command fetch-names scrapes name lists from Kate Monk's Onomastikon
// (tekeli.li) and writes the training corpus files male_first.txt,
// female_first.txt, and surnames.txt. Page paths are hardcoded for
// reproducibility, and requests are politely rate limited.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const defaultBase = "https://tekeli.li/onomastikon/"

// Pages containing exclusively male first names.
var malePages = []string{
	"Ancient-World/Egypt/Male.html",
	"Ancient-World/Greece/Male.html",
	"Celtic/Brittany/Male.html",
	"Celtic/Celtic/Male.html",
	"Celtic/Ireland/Celtic-Male.html",
	"Celtic/Wales/Celtic-Male.html",
	"England-Firstnames/Surname-Adaptations/English-Male-A-C.html",
	"England-Firstnames/Surname-Adaptations/English-Male-D-J.html",
	"England-Firstnames/Surname-Adaptations/English-Male-K-R.html",
	"England-Firstnames/Surname-Adaptations/English-Male-S-Z.html",
	"England-Firstnames/Variants/Biblical-Male-NT.html",
	"England-Firstnames/Variants/Biblical-Male-OT.html",
	"England-Firstnames/Variants/Celtic-Male.html",
	"England-Firstnames/Variants/Germanic-Male.html",
	"England-Firstnames/Variants/Greek-Male.html",
	"England-Firstnames/Variants/Latin-Male.html",
	"Europe-Eastern/Albania/Male.html",
	"Europe-Eastern/Romania/Male.html",
	"Europe-Scandinavia/Old-Norse/Male.html",
	"Europe-Western/Basque/Male.html",
	"Middle-East/Arab/Male.html",
	"Orient/China/Male.html",
	"Orient/Japan/Male.html",
	"Orient/Korea/Male.html",
}

// Pages containing exclusively female first names.
var femalePages = []string{
	"Ancient-World/Egypt/Female.html",
	"Ancient-World/Greece/Female.html",
	"Celtic/Brittany/Female.html",
	"Celtic/Celtic/Female.html",
	"Celtic/Ireland/Celtic-Female.html",
	"Celtic/Wales/Celtic-Female.html",
	"England-Firstnames/Surname-Adaptations/English-Female.html",
	"England-Firstnames/Variants/Biblical-Female-NT.html",
	"England-Firstnames/Variants/Biblical-Female-OT.html",
	"England-Firstnames/Variants/Celtic-Female.html",
	"England-Firstnames/Variants/Germanic-Female.html",
	"England-Firstnames/Variants/Greek-Female.html",
	"England-Firstnames/Variants/Latin-Female.html",
	"Europe-Eastern/Albania/Female.html",
	"Europe-Eastern/Romania/Female.html",
	"Europe-Scandinavia/Old-Norse/Female.html",
	"Europe-Western/Basque/Female.html",
	"Middle-East/Arab/Female.html",
	"Orient/China/Female.html",
	"Orient/Japan/Female.html",
	"Orient/Korea/Female.html",
}

// Pages containing surnames.
var surnamePages = []string{
	"Celtic/Brittany/Surnames.html",
	"Celtic/Ireland/Surnames-A-F.html",
	"Celtic/Ireland/Surnames-G-Mac.html",
	"Celtic/Ireland/Surnames-M-Z.html",
	"Celtic/Scotland/Surnames.html",
	"Celtic/Wales/Surnames.html",
	"England-Surnames/Byname.html",
	"England-Surnames/Localities.html",
	"England-Surnames/Matronymics.html",
	"England-Surnames/Old-English.html",
	"England-Surnames/Patronymics.html",
	"England-Surnames/Tradenames.html",
	"Europe-Western/Austria/Surnames.html",
	"Europe-Western/Basque/Surnames.html",
	"Europe-Western/Belgium/Surnames.html",
	"Europe-Western/France/Surnames.html",
	"Europe-Western/Germany/Surnames.html",
	"Europe-Western/Italy/Surnames.html",
	"Europe-Western/Netherlands/Surnames.html",
	"Europe-Western/Portugal/Surnames.html",
	"Europe-Western/Spain/Surnames.html",
	"Europe-Western/Switzerland/Surnames.html",
	"Europe-Eastern/Greece/Surnames.html",
	"Europe-Eastern/Hungary/Surnames.html",
	"Europe-Eastern/Poland/Surnames.html",
	"Europe-Scandinavia/Denmark/Surnames.html",
	"Europe-Scandinavia/Finland/Surnames.html",
	"Europe-Scandinavia/Norway/Surnames.html",
	"Europe-Scandinavia/Sweden/Surnames.html",
}

// Pages with male and female names divided by section headings.
var mixedPages = []string{
	"Celtic/Celtic/Cornwall.html",
	"Celtic/Celtic/Manx.html",
	"Celtic/Ireland/Biblical.html",
	"Celtic/Ireland/Germanic.html",
	"Celtic/Ireland/Greek.html",
	"Celtic/Ireland/Latin.html",
	"Celtic/Scotland/Biblical.html",
	"Celtic/Scotland/Celtic.html",
	"Celtic/Scotland/Germanic.html",
	"Celtic/Scotland/Norse.html",
	"Celtic/Wales/Biblical.html",
	"Celtic/Wales/Germanic.html",
	"England-Saxon/Dithematic.html",
	"England-Saxon/Monothematic.html",
	"England-Medieval/Biblical.html",
	"England-Medieval/Celtic.html",
	"England-Medieval/Early-Modern.html",
	"England-Medieval/Norman.html",
	"England-Medieval/Norse.html",
	"England-Medieval/Puritan.html",
	"England-Medieval/Saxon.html",
	"Europe-Medieval/Byzantium.html",
	"Europe-Medieval/France.html",
	"Europe-Medieval/Franks.html",
	"Europe-Medieval/Germany.html",
	"Europe-Medieval/Goths.html",
	"Europe-Medieval/Italy.html",
	"Europe-Medieval/Lombards.html",
	"Europe-Scandinavia/Denmark/Norse.html",
	"Europe-Scandinavia/Iceland/Norse.html",
	"Europe-Scandinavia/Norway/Norse.html",
	"Europe-Scandinavia/Sweden/Norse.html",
	"Former-Soviet-Union/Russia/Slavic.html",
	"Former-Soviet-Union/Russia/Various.html",
	"Middle-East/Jewish/Biblical.html",
	"Middle-East/Jewish/Modern.html",
}

// nameRe matches plausible names: alphabetic, optional interior hyphens
// or apostrophes.
var nameRe = regexp.MustCompile(`^[a-z][a-z'-]*[a-z]$`)

// skipRe matches prose fragments the pages mix in between name lists.
var skipRe = regexp.MustCompile(`meaning|origin|variant|derivative|diminutive|history|introduction|source|copyright|index|century|period|dynasty`)

// commonWords are frequent English words that leak out of descriptive
// text on the pages and are never plausible names.
var commonWords = map[string]bool{}

func init() {
	for _, w := range strings.Fields(`
		about above across after again against also although always among
		another any anyone because become been before began behind being
		below between beyond both brought built called came can cannot
		case certain come common could current dark day dead death did
		died does done down during each early either else end ending
		english enough even ever every except fact far few find first
		five following for form formed former found four free french
		full further gave general german get give given goes going gone
		good got great greek had half has have having held here high him
		his holy how however hundred into irish its just keep kept kind
		king known land large last late later latin least left less let
		like little local long look lord lost low made main make making
		man many may meaning means meant men might modern more most much
		must near nearly never new next nine noble none nor not nothing
		now number often old once one only original other others our out
		over own part people perhaps place popular possibly probably
		rare rather really right roman said saint same second see seen
		seven several she short should since six small some sometimes
		son soon still such taken ten than that the their them then
		there these they third this those though three through time told
		too took top toward two under until upon used usually very was
		were what when where which while white who whose will with
		within without word words would year years yet young`) {
		commonWords[w] = true
	}
}

// section tracks which heading governs the names currently being read.
type section int

const (
	secNone section = iota
	secMale
	secFemale
	secSurname
)

// pageNames holds the classified names extracted from one page.
type pageNames struct {
	male        map[string]bool
	female      map[string]bool
	surname     map[string]bool
	unsectioned map[string]bool
}

func newPageNames() *pageNames {
	return &pageNames{
		male:        map[string]bool{},
		female:      map[string]bool{},
		surname:     map[string]bool{},
		unsectioned: map[string]bool{},
	}
}

func (p *pageNames) add(sec section, names []string) {
	target := p.unsectioned
	switch sec {
	case secMale:
		target = p.male
	case secFemale:
		target = p.female
	case secSurname:
		target = p.surname
	}
	for _, n := range names {
		target[n] = true
	}
}

// extractNames walks a page, switching section on Male/Female/Surname
// headings and harvesting names from table cells and body text.
func extractNames(r io.Reader) (*pageNames, error) {
	page := newPageNames()
	z := html.NewTokenizer(r)

	sec := secNone
	var inHeading, inCell, inSkip bool
	var headingText, cellText strings.Builder
	tdIndex := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return page, nil
			}
			return nil, z.Err()

		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "h1", "h2", "h3", "h4", "h5", "h6":
				inHeading = true
				headingText.Reset()
			case "td":
				inCell = true
				cellText.Reset()
			case "tr":
				tdIndex = 0
			case "script", "style":
				inSkip = true
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "h1", "h2", "h3", "h4", "h5", "h6":
				inHeading = false
				sec = classifyHeading(headingText.String())
			case "td":
				inCell = false
				// Only the first two columns carry names; the rest is
				// commentary.
				if tdIndex < 2 {
					page.add(sec, cleanNames(cellText.String()))
				}
				tdIndex++
			case "script", "style":
				inSkip = false
			}

		case html.TextToken:
			text := string(z.Text())
			switch {
			case inHeading:
				headingText.WriteString(text)
			case inCell:
				cellText.WriteString(text)
			case !inSkip:
				if strings.TrimSpace(text) != "" {
					page.add(sec, cleanNames(text))
				}
			}
		}
	}
}

func classifyHeading(heading string) section {
	h := strings.ToLower(strings.TrimSpace(heading))
	switch {
	case strings.Contains(h, "female") || strings.Contains(h, "women") || strings.Contains(h, "girl"):
		return secFemale
	case strings.Contains(h, "male") || strings.Contains(h, "boy") || h == "men":
		return secMale
	case strings.Contains(h, "surname"):
		return secSurname
	}
	return secNone
}

var parenRe = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)

// cleanNames splits a text chunk into individual lowercase names,
// dropping parentheticals, prose fragments, and common English words.
func cleanNames(raw string) []string {
	text := parenRe.ReplaceAllString(raw, " ")
	text = strings.ReplaceAll(text, "?", "")

	var names []string
	for _, part := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '/' || r == '\n'
	}) {
		for _, word := range strings.Fields(part) {
			word = strings.ToLower(strings.Trim(word, `.-'"`))
			word = strings.TrimFunc(word, func(r rune) bool { return r < 'a' || r > 'z' })
			if len(word) < 2 || !nameRe.MatchString(word) {
				continue
			}
			if skipRe.MatchString(word) || commonWords[word] {
				continue
			}
			names = append(names, word)
		}
	}
	return names
}

func fetchPage(client *http.Client, url string) (*pageNames, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "namesmith-fetch/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %s", url, resp.Status)
	}
	return extractNames(resp.Body)
}

func merge(dst map[string]bool, srcs ...map[string]bool) {
	for _, src := range srcs {
		for n := range src {
			dst[n] = true
		}
	}
}

func fetchAll(client *http.Client, base string, pages []string, pageType string, delay time.Duration, male, female, surname map[string]bool) {
	for _, path := range pages {
		time.Sleep(delay)
		page, err := fetchPage(client, base+path)
		if err != nil {
			log.Printf("skip %s: %v", path, err)
			continue
		}

		switch pageType {
		case "male":
			merge(male, page.male, page.unsectioned)
		case "female":
			merge(female, page.female, page.unsectioned)
		case "surname":
			merge(surname, page.surname, page.unsectioned)
		case "mixed":
			merge(male, page.male, page.unsectioned)
			merge(female, page.female, page.unsectioned)
			merge(surname, page.surname)
		}
	}
}

func writeList(dir, filename string, names map[string]bool) error {
	sorted := make([]string, 0, len(names))
	for n := range names {
		sorted = append(sorted, n)
	}
	sort.Strings(sorted)

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(strings.Join(sorted, "\n")+"\n"), 0o644); err != nil {
		return err
	}
	log.Printf("wrote %d names to %s", len(sorted), path)
	return nil
}

func main() {
	var (
		out   = flag.String("out", "data", "Output directory for name list files")
		base  = flag.String("base", defaultBase, "Onomastikon base URL")
		delay = flag.Duration("delay", 300*time.Millisecond, "Delay between requests")
	)
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	male := map[string]bool{}
	female := map[string]bool{}
	surname := map[string]bool{}

	total := len(malePages) + len(femalePages) + len(surnamePages) + len(mixedPages)
	log.Printf("fetching %d pages from %s", total, *base)

	fetchAll(client, *base, malePages, "male", *delay, male, female, surname)
	log.Printf("%d male names so far", len(male))
	fetchAll(client, *base, femalePages, "female", *delay, male, female, surname)
	log.Printf("%d female names so far", len(female))
	fetchAll(client, *base, surnamePages, "surname", *delay, male, female, surname)
	log.Printf("%d surnames so far", len(surname))
	fetchAll(client, *base, mixedPages, "mixed", *delay, male, female, surname)

	for filename, names := range map[string]map[string]bool{
		"male_first.txt":   male,
		"female_first.txt": female,
		"surnames.txt":     surname,
	} {
		if err := writeList(*out, filename, names); err != nil {
			log.Fatalf("write %s: %v", filename, err)
		}
	}
}
