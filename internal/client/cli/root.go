package cli

import (
	"bufio"
	"context"
	"log"
	"os"
)

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to MaterialHub CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	if a.users.CheckAuth(ctx) {
		if u := a.users.User(); u != nil {
			log.Printf("Logged in as %s", u.Username)
		}
	}

	runREPL(ctx, a, a.getStatus, scanner)
}
