// Copyright (C) 2025 SAGE-X Project
//
// This file is part of inbenta-signature-go.
//
// inbenta-signature-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// inbenta-signature-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with inbenta-signature-go.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/a2aproject/a2a-go/a2a"

	"github.com/sage-x-project/inbenta-signature-go/pkg/client"
	"github.com/sage-x-project/inbenta-signature-go/pkg/config"
	"github.com/sage-x-project/inbenta-signature-go/pkg/logging"
	"github.com/sage-x-project/inbenta-signature-go/pkg/transport"
)

func main() {
	fmt.Println("Inbenta Signature Go - Simple Client Example")
	fmt.Println("============================================")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Load the shared key and agent URL
	fmt.Println("\n1. Loading configuration...")
	cfg, err := config.Load([]string{"."}, config.WithDefaults(map[string]any{
		"signature.base_url": "http://localhost:8080",
	}))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Signature.Validate(); err != nil {
		log.Fatalf("Invalid config (set INBENTA_SIGNATURE_KEY): %v", err)
	}
	fmt.Printf("   Agent URL: %s\n", cfg.Signature.BaseURL)

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Create the signature client
	fmt.Println("\n2. Creating signature client...")
	signer, err := client.NewFromConfig(cfg.Signature, client.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create signature client: %v", err)
	}
	fmt.Printf("   Signature version: %s\n", signer.SignatureVersion())

	// Fetch the agent card with a signed request
	fmt.Println("\n3. Fetching agent card...")
	card, err := transport.NewSignedHTTPTransport(cfg.Signature.BaseURL, signer).GetAgentCard(ctx)
	if err != nil {
		fmt.Printf("   Failed to fetch agent card: %v\n", err)
		fmt.Println("\nStart the signed server first:")
		fmt.Println("  INBENTA_SIGNATURE_KEY=<key> go run ./cmd/examples/signed-server")
		return
	}
	fmt.Printf("   Target Agent: %s\n", card.Name)

	// Create the A2A client over the signed transport
	fmt.Println("\n4. Creating signed A2A client...")
	agent, err := transport.NewSignedClient(ctx, signer, card)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	defer agent.Destroy()

	// Send a message
	fmt.Println("\n5. Sending message to agent...")
	params := &a2a.MessageSendParams{
		Message: a2a.NewMessage(a2a.MessageRoleUser, &a2a.TextPart{Text: "Hello from inbenta-signature-go!"}),
	}
	result, err := agent.SendMessage(ctx, params)
	if err != nil {
		log.Fatalf("Failed to send message: %v", err)
	}
	fmt.Printf("   Received %T (response signature validated)\n", result)

	// Stream a message
	fmt.Println("\n6. Streaming message...")
	for event, err := range agent.SendStreamingMessage(ctx, params) {
		if err != nil {
			log.Fatalf("Stream failed: %v", err)
		}
		fmt.Printf("   Event: %T\n", event)
	}

	fmt.Println("\nExample completed!")
}
