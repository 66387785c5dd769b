// cmd/tablectl/watch.go
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableside/internal/adapters/out/push"
	cartdom "tableside/internal/domain/cart"
	"tableside/internal/selforder"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream cart pushes for the session until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sessionID == "" {
			return errors.New("session is required (--session or config session_id)")
		}

		ch := push.NewSSEChannel(serverURL, nil)
		unsub, err := ch.Subscribe(sessionID, selforder.Handlers{
			OnCartUpdated: func(c *cartdom.Cart) {
				if c == nil {
					fmt.Println("-- cart cleared (session ended) --")
					return
				}
				fmt.Printf("-- cart updated (%d items, subtotal %s) --\n", len(c.Items), c.Subtotal)
				printCart(c)
			},
			OnCartError: func(pe cartdom.PushError) {
				fmt.Printf("-- cart error: %s (event %s) --\n", pe.Message, pe.OriginatingEvent)
			},
		})
		if err != nil {
			return err
		}
		defer unsub()

		fmt.Printf("watching session %s on %s (ctrl-c to stop)\n", sessionID, serverURL)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return nil
	},
}
