package app

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/setsplit/internal/session"
	"github.com/ayoisaiah/setsplit/store"
)

// discardReview deletes the saved review of a session. It requests for
// confirmation before proceeding with the operation.
func discardReview(
	db store.DB,
	sessionName string,
	w io.Writer,
	r io.Reader,
) error {
	saved, err := db.GetReview(sessionName)
	if err != nil {
		return err
	}

	warning := pterm.Warning.Sprintf(
		"The review of %s saved on %s will be deleted permanently. Press ENTER to proceed",
		sessionName,
		saved.UpdatedAt.Format("Jan 02, 2006 03:04 PM"),
	)

	fmt.Fprint(w, warning)

	reader := bufio.NewReader(r)

	_, _ = reader.ReadString('\n')

	return db.DeleteReview(sessionName)
}

// discardReviewAction handles the discard-review command which forgets the
// boundaries saved for a session.
func discardReviewAction(ctx *cli.Context) error {
	path, err := sessionArg(ctx)
	if err != nil {
		return err
	}

	sess, err := session.Load(path)
	if err != nil {
		return err
	}

	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.close()

	err = discardReview(e.db, sess.Name, os.Stdout, os.Stdin)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("The review of %s was discarded", sess.Name)

	return nil
}
