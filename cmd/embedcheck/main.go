// Command embedcheck builds two Kummer extensions over the same
// cyclotomic base field and decides whether the first embeds into the
// second, printing the generator images when it does.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/big"
	"strings"

	"kummer-CFT/cyclo"
	"kummer-CFT/factored"
	"kummer-CFT/kummer"
)

func main() {
	mFlag := flag.Int("m", 8, "conductor of the cyclotomic base field Q(zeta_m)")
	nKFlag := flag.Int64("nK", 2, "exponent of the candidate subfield K")
	nLFlag := flag.Int64("nL", 2, "exponent of the ambient extension L")
	gensKFlag := flag.String("gensK", "2", "comma-separated rational generators of K")
	gensLFlag := flag.String("gensL", "2,3", "comma-separated rational generators of L")
	startFlag := flag.Uint64("start", 2, "first prime candidate for the scan")
	limitFlag := flag.Uint64("limit", 1<<20, "largest prime candidate inspected")
	flag.Parse()

	field, err := cyclo.NewField(*mFlag)
	if err != nil {
		log.Fatalf("field: %v", err)
	}
	K, err := buildExtension(field, *nKFlag, *gensKFlag)
	if err != nil {
		log.Fatalf("K: %v", err)
	}
	L, err := buildExtension(field, *nLFlag, *gensLFlag)
	if err != nil {
		log.Fatalf("L: %v", err)
	}

	stream := cyclo.NewPrimeStream(*startFlag, 0, 0, *limitFlag)
	emb, err := kummer.IsSubfield(K, L, stream)
	if err != nil {
		log.Fatalf("subfield test: %v", err)
	}
	if !emb.OK {
		fmt.Println("no embedding of K into L")
		return
	}
	fmt.Println("K embeds into L")
	for i, img := range emb.Images {
		coords := make([]string, len(img.Coords))
		for t, c := range img.Coords {
			coords[t] = c.String()
		}
		fmt.Printf("  generator %d -> %s  coords (%s)\n", i, img.Element.String(), strings.Join(coords, ","))
	}
}

func buildExtension(field *cyclo.Field, n int64, gens string) (*kummer.Extension, error) {
	var list []*factored.Element
	for _, part := range strings.Split(gens, ",") {
		part = strings.TrimSpace(part)
		q := new(big.Rat)
		if _, ok := q.SetString(part); !ok {
			return nil, fmt.Errorf("cannot parse %q as a rational", part)
		}
		g, err := factored.FromElement(field.FromRat(q))
		if err != nil {
			return nil, err
		}
		list = append(list, g)
	}
	return kummer.New(field, big.NewInt(n), list)
}
