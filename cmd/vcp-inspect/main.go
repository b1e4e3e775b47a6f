package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/portablecontext/vcp-engine/internal/token"
)

// #region main

func main() {
	wire := flag.Bool("wire", false, "input is wire form (‖-separated)")
	jsonOut := flag.Bool("json", false, "output parsed lines as JSON")
	legend := flag.Bool("legend", false, "print the symbol legend and exit")
	noBox := flag.Bool("no-box", false, "skip the boxed token display")
	flag.Parse()

	if *legend {
		printLegend()
		return
	}

	raw, err := readToken(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "read token: %v\n", err)
		os.Exit(2)
	}
	if raw == "" {
		fmt.Fprintln(os.Stderr, "usage: vcp-inspect [--wire] [--json] [--no-box] [token]")
		fmt.Fprintln(os.Stderr, "       vcp-inspect --legend")
		fmt.Fprintln(os.Stderr, "token is read from stdin when not given as an argument")
		os.Exit(2)
	}

	csm1 := raw
	if *wire {
		csm1 = token.FromWire(raw)
	}

	if *jsonOut {
		if err := printJSON(token.Parse(csm1)); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !*noBox {
		fmt.Println(token.FormatForDisplay(csm1))
		fmt.Println()
	}
	printLines(csm1)
}

// #endregion main

// #region input

func readToken(args []string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// #endregion input

// #region output

// lineDescriptions names each CSM-1 prefix for the annotated listing.
var lineDescriptions = map[string]string{
	"VCP": "protocol version / profile",
	"C":   "constitution",
	"P":   "persona / adherence",
	"G":   "goal / experience / style",
	"X":   "constraint codes",
	"F":   "active flags",
	"S":   "private markers (withheld)",
	"SC":  "system context",
	"R":   "current state",
	"LC":  "state lifecycle",
}

func printLines(csm1 string) {
	for _, line := range strings.Split(csm1, "\n") {
		prefix, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		desc := lineDescriptions[prefix]
		fmt.Printf("  %-4s %-28s %s\n", prefix, desc, value)
	}
}

func printLegend() {
	for _, entry := range token.EmojiLegend() {
		fmt.Printf("  %-4s %s\n", entry.Emoji, entry.Meaning)
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// #endregion output
