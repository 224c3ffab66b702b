package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mbagrov/chatshell/internal/client/shell"
)

var (
	version   string
	buildDate string
)

// repl runs the interactive shell loop, dispatching commands to the server.
func repl(client *shell.Client) {
	scanner := bufio.NewScanner(os.Stdin)

	show := func(v *shell.View, err error) {
		if err != nil {
			fmt.Println(err)
			return
		}
		shell.Render(os.Stdout, v)
	}

	for {
		fmt.Print("chatshell> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, register <user> <secret>, login <user> <secret>, view, nav <page>, new, select <label...>, send <text...>, upload <file>, logout, exit")
		case "register":
			if len(args) < 3 {
				fmt.Println("Usage: register <user> <secret>")
				continue
			}
			if err := client.Register(args[1], args[2]); err != nil {
				fmt.Println(err)
			} else {
				fmt.Println("Registered")
			}
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <user> <secret>")
				continue
			}
			show(client.Login(args[1], args[2]))
		case "view":
			show(client.CurrentView())
		case "nav":
			if len(args) < 2 {
				fmt.Println("Usage: nav <Home|Chatbot|Upload|Logout>")
				continue
			}
			show(client.Navigate(args[1]))
		case "new":
			show(client.NewChat())
		case "select":
			if len(args) < 2 {
				fmt.Println("Usage: select <label>")
				continue
			}
			show(client.Select(strings.Join(args[1:], " ")))
		case "send":
			if len(args) < 2 {
				fmt.Println("Usage: send <text>")
				continue
			}
			show(client.Send(strings.Join(args[1:], " ")))
		case "upload":
			if len(args) < 2 {
				fmt.Println("Usage: upload <file>")
				continue
			}
			msg, err := client.Upload(args[1])
			if err != nil {
				fmt.Println(err)
			} else {
				fmt.Println(msg)
			}
		case "logout":
			show(client.Logout())
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// main parses command-line flags and starts the interactive shell.
func main() {
	var (
		baseURL string
		showVer bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("ChatShell Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	client, err := shell.New(baseURL)
	if err != nil {
		log.Fatal(err)
	}
	repl(client)
}
