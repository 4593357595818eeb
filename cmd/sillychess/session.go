package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/silly-chess-go/internal/chess"
	"github.com/lgbarn/silly-chess-go/internal/config"
	"github.com/lgbarn/silly-chess-go/internal/errors"
	"github.com/lgbarn/silly-chess-go/internal/game"
	"github.com/lgbarn/silly-chess-go/internal/output"
)

var (
	errUnknownCommand = stderrors.New("unknown command")
	errUsage          = stderrors.New("wrong number of arguments")
	errBadSquare      = stderrors.New("not a square")
	errEmptySquare    = stderrors.New("no piece on square")
)

// session reads commands line by line and drives one game.
type session struct {
	g   *game.Game
	w   output.GameWriter
	cfg *config.Config
	raw io.Writer
}

// newSession starts a game for cfg reporting through w. Help text is
// written to raw.
func newSession(cfg *config.Config, w output.GameWriter, raw io.Writer) (*session, error) {
	g, err := game.New(cfg)
	if err != nil {
		return nil, err
	}
	return &session{g: g, w: w, cfg: cfg, raw: raw}, nil
}

// run processes commands from r until quit or end of input.
func (s *session) run(r io.Reader) error {
	if err := s.w.WriteState(s.g); err != nil {
		return err
	}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := s.exec(strings.Fields(line)); err != nil {
			return err
		}
		if s.g.Closed() {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "reading commands")
	}
	return s.w.Flush()
}

// exec runs one command. Only write failures are returned; a refused
// command is reported through the writer.
func (s *session) exec(args []string) error {
	cmd, args := strings.ToLower(args[0]), args[1:]
	s.cfg.Logf(config.Commentary, "command %q %v", cmd, args)

	var res game.Result
	showState := false
	switch cmd {
	case "select":
		res = s.selectPiece(args)
		showState = res.Accepted
	case "move", "to":
		res = s.moveTo(args)
		showState = true
	case "play":
		res = s.play(args)
		showState = true
	case "moves":
		return s.listMoves(args)
	case "silly":
		res = s.toggle(args)
		showState = res.Accepted
	case "restart":
		res = s.g.Restart()
		showState = true
	case "quit":
		res = s.g.Quit()
	case "board":
		return s.w.WriteState(s.g)
	case "help":
		usageCommands(s.raw)
		return nil
	default:
		res = game.Result{Err: errors.Wrap(errUnknownCommand, cmd)}
	}

	if err := s.w.WriteResult(res); err != nil {
		return err
	}
	if showState {
		return s.w.WriteState(s.g)
	}
	return nil
}

// square parses the single square argument of a command.
func square(args []string) (chess.Square, error) {
	if len(args) != 1 {
		return chess.Square{}, errUsage
	}
	sq, ok := chess.ParseSquare(strings.ToLower(args[0]))
	if !ok {
		return chess.Square{}, errors.Wrap(errBadSquare, args[0])
	}
	return sq, nil
}

// pieceOn finds the piece standing on the square named by args.
func (s *session) pieceOn(args []string) (*chess.Piece, error) {
	sq, err := square(args)
	if err != nil {
		return nil, err
	}
	p := s.g.Board().At(sq)
	if p == nil {
		return nil, errors.Wrap(errEmptySquare, sq.String())
	}
	return p, nil
}

func (s *session) selectPiece(args []string) game.Result {
	p, err := s.pieceOn(args)
	if err != nil {
		return game.Result{Err: err}
	}
	return s.g.SelectPiece(p.ID)
}

func (s *session) moveTo(args []string) game.Result {
	sq, err := square(args)
	if err != nil {
		return game.Result{Err: err}
	}
	return s.g.SelectSquare(sq)
}

// play selects the piece on the first square and moves it to the second.
func (s *session) play(args []string) game.Result {
	if len(args) == 1 && strings.Contains(args[0], "-") {
		args = strings.SplitN(args[0], "-", 2)
	}
	if len(args) != 2 {
		return game.Result{Err: errUsage}
	}
	if res := s.selectPiece(args[:1]); !res.Accepted {
		return res
	}
	return s.moveTo(args[1:])
}

func (s *session) listMoves(args []string) error {
	p, err := s.pieceOn(args)
	if err != nil {
		return s.w.WriteResult(game.Result{Err: err})
	}
	return s.w.WriteMoves(p.Square, s.g.LegalMoves(p.ID))
}

func (s *session) toggle(args []string) game.Result {
	if len(args) != 1 {
		return game.Result{Err: errUsage}
	}
	switch strings.ToLower(args[0]) {
	case "on":
		return s.g.ToggleSillyMode(true)
	case "off":
		return s.g.ToggleSillyMode(false)
	}
	return game.Result{Err: errors.Wrap(errUsage, "silly on|off")}
}

// usageCommands lists the commands a session understands.
func usageCommands(w io.Writer) {
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  select <sq>      Select the piece on a square\n")
	fmt.Fprintf(w, "  move <sq>        Move the selected piece to a square\n")
	fmt.Fprintf(w, "  play <sq> <sq>   Select and move in one step (also e2-e4)\n")
	fmt.Fprintf(w, "  moves <sq>       List legal destinations of the piece on a square\n")
	fmt.Fprintf(w, "  silly on|off     Toggle silly mode (restarts the game)\n")
	fmt.Fprintf(w, "  restart          Start a new game\n")
	fmt.Fprintf(w, "  board            Show the board\n")
	fmt.Fprintf(w, "  quit             End the session\n")
}
