// Dialogue is a console client for exercising a Dialogflow CX agent
// without a robot: it starts a flow, then relays typed utterances and
// prints the parsed results, including any robot_command directives.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/teslashibe/go-nao-story/internal/config"
	"github.com/teslashibe/go-nao-story/internal/log"
	"github.com/teslashibe/go-nao-story/pkg/dialogflow"
)

func main() {
	godotenv.Load()

	flowID := flag.String("flow", "", "Flow ID to start (defaults to the first of DIALOGFLOW_FLOWS)")
	logLevel := flag.String("log-level", "warn", "Log level")
	flag.Parse()

	log.Init(*logLevel)

	flow := *flowID
	if flow == "" {
		flow = config.Flows()[0]
	}

	keyfile, err := os.ReadFile(config.KeyfilePath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "read keyfile: %v\n", err)
		os.Exit(1)
	}

	client, err := dialogflow.New(keyfile, config.AgentID(), config.Location("europe-west4"),
		dialogflow.WithLanguage(config.Language()),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create client: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	resp, err := client.StartFlow(ctx, flow, dialogflow.StartOptions{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "start flow: %v\n", err)
		os.Exit(1)
	}
	session := client.Session()
	fmt.Printf("session %s started on flow %s\n\n", session.ID, flow)
	printResult(resp)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			return
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "/quit" {
			return
		}

		resp, err := client.DetectIntent(ctx, text, session.ID, dialogflow.QueryOptions{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			if dialogflow.IsSessionFatal(err) {
				return
			}
			continue
		}
		printResult(resp)
	}
}

func printResult(resp *dialogflow.Response) {
	result, err := dialogflow.Parse(resp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse: %v\n", err)
		return
	}

	if result.Intent != "" {
		conf := 0.0
		if result.IntentConfidence != nil {
			conf = *result.IntentConfidence
		}
		fmt.Printf("  intent: %s (%.2f)\n", result.Intent, conf)
	}
	if result.CurrentFlow != "" || result.CurrentPage != "" {
		fmt.Printf("  state:  flow=%s page=%s\n", result.CurrentFlow, result.CurrentPage)
	}
	for _, msg := range result.FulfillmentMessages {
		fmt.Printf("  agent>  %s\n", msg)
	}
	if d := result.Directive(); d != nil {
		fmt.Printf("  directive: motion=%q led=%q text=%q\n", d.Motion, d.Color, d.Text)
	}
	if result.EndInteraction {
		fmt.Println("  [end of interaction]")
	}
	fmt.Println()
}
