// Command frobscan builds a Kummer extension from command-line data, runs
// the generating-prime scan and reports the accepted primes, their
// Frobenius elements and the quotient-order decay, as JSON and optionally
// as an HTML chart page.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"kummer-CFT/cyclo"
	"kummer-CFT/factored"
	"kummer-CFT/kummer"
)

type scanReport struct {
	Fingerprint    string     `json:"fingerprint"`
	Conductor      int        `json:"conductor"`
	Exponent       string     `json:"exponent"`
	GroupOrder     string     `json:"group_order"`
	Scanned        int        `json:"candidates_scanned"`
	Primes         []string   `json:"primes"`
	Ideals         []string   `json:"ideals"`
	Frobenii       [][]string `json:"frobenii"`
	QuotientOrders []string   `json:"quotient_orders"`
}

func main() {
	mFlag := flag.Int("m", 8, "conductor of the cyclotomic base field Q(zeta_m)")
	nFlag := flag.Int64("n", 2, "Kummer exponent, must divide m")
	gensFlag := flag.String("gens", "2,3", "comma-separated rational generators")
	startFlag := flag.Uint64("start", 2, "first prime candidate")
	limitFlag := flag.Uint64("limit", 1<<20, "largest prime candidate inspected")
	coprimeFlag := flag.String("coprime", "", "skip primes dividing this integer")
	jsonFlag := flag.String("json", "", "write the JSON report here (default stdout)")
	htmlFlag := flag.String("html", "", "write an HTML chart page here (optional)")
	flag.Parse()

	field, err := cyclo.NewField(*mFlag)
	if err != nil {
		log.Fatalf("field: %v", err)
	}
	gens, err := parseGenerators(field, *gensFlag)
	if err != nil {
		log.Fatalf("generators: %v", err)
	}
	K, err := kummer.New(field, big.NewInt(*nFlag), gens)
	if err != nil {
		log.Fatalf("extension: %v", err)
	}
	var coprime *big.Int
	if *coprimeFlag != "" {
		coprime = new(big.Int)
		if _, ok := coprime.SetString(*coprimeFlag, 10); !ok {
			log.Fatalf("invalid -coprime value %q", *coprimeFlag)
		}
	}

	stream := cyclo.NewPrimeStream(*startFlag, 0, 0, *limitFlag)
	res, err := K.GeneratingFrobenii(stream, coprime)
	if err != nil {
		log.Fatalf("scan: %v", err)
	}

	rep := buildReport(K, res)
	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		log.Fatalf("marshal report: %v", err)
	}
	if *jsonFlag == "" {
		fmt.Println(string(out))
	} else if err := os.WriteFile(*jsonFlag, out, 0o644); err != nil {
		log.Fatalf("write %s: %v", *jsonFlag, err)
	}

	if *htmlFlag != "" {
		if err := renderCharts(*htmlFlag, rep); err != nil {
			log.Fatalf("render charts: %v", err)
		}
		fmt.Println("Chart page:", *htmlFlag)
	}
}

func parseGenerators(field *cyclo.Field, s string) ([]*factored.Element, error) {
	var out []*factored.Element
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		q := new(big.Rat)
		if _, ok := q.SetString(part); !ok {
			return nil, fmt.Errorf("cannot parse %q as a rational", part)
		}
		g, err := factored.FromElement(field.FromRat(q))
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

func buildReport(K *kummer.Extension, res *kummer.ScanResult) scanReport {
	rep := scanReport{
		Fingerprint: K.Fingerprint(),
		Conductor:   K.Field().Conductor(),
		Exponent:    K.Exponent().String(),
		GroupOrder:  K.Group().Order().String(),
		Scanned:     res.Scanned,
	}
	for _, p := range res.Primes {
		rep.Primes = append(rep.Primes, p.String())
	}
	for _, pr := range res.Ideals {
		rep.Ideals = append(rep.Ideals, pr.Key())
	}
	for _, f := range res.Frobenii {
		coords := make([]string, len(f))
		for i, c := range f {
			coords[i] = c.String()
		}
		rep.Frobenii = append(rep.Frobenii, coords)
	}
	for _, o := range res.QuotientOrders {
		rep.QuotientOrders = append(rep.QuotientOrders, o.String())
	}
	return rep
}

func renderCharts(path string, rep scanReport) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Quotient order decay",
			Subtitle: fmt.Sprintf("group order %s, %d candidates scanned", rep.GroupOrder, rep.Scanned),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	var orders []opts.LineData
	for _, o := range rep.QuotientOrders {
		v := new(big.Float)
		v.SetString(o)
		f, _ := v.Float64()
		orders = append(orders, opts.LineData{Value: f})
	}
	line.SetXAxis(rep.Primes).AddSeries("quotient order", orders)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Accepted primes"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	var primes []opts.BarData
	for _, p := range rep.Primes {
		v := new(big.Float)
		v.SetString(p)
		f, _ := v.Float64()
		primes = append(primes, opts.BarData{Value: f})
	}
	bar.SetXAxis(rep.Ideals).AddSeries("prime", primes)

	page := components.NewPage()
	page.AddCharts(line, bar)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}
