// Command client opens an interactive chat session. It takes a host and a
// port, sends each stdin line to the server, and prints every line the other
// participants send.
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/gookit/color"
	"github.com/joho/godotenv"

	"github.com/Srinivas-Raghav-VC/MultiThreaded-Chat-Room/internal/client"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <host> <port>\n", filepath.Base(os.Args[0]))
		os.Exit(1)
	}
	addr := net.JoinHostPort(os.Args[1], os.Args[2])

	c := client.New(addr)
	if err := c.Connect(); err != nil {
		color.Red.Printf("failed to connect to %s: %v\n", addr, err)
		os.Exit(1)
	}
	defer c.Disconnect()

	color.Green.Printf("connected to %s\n", addr)
	color.Gray.Println("type your messages (or 'quit' to exit)")

	// Print incoming broadcasts until the server goes away.
	go func() {
		for msg := range c.Messages() {
			color.Cyan.Printf("> %s\n", msg.Body())
		}
		color.Gray.Println("server closed the connection")
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "quit" || text == "exit" {
			break
		}

		if err := c.Send(text); err != nil {
			color.Red.Printf("failed to send: %v\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		color.Red.Printf("error reading input: %v\n", err)
	}
}
