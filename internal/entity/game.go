package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	GameFieldSize = 4
	MinSelection  = 3
	MaxSelection  = 5
)

const (
	ResultLost = "You lost"
	ResultWon  = "You won"
)

var (
	ErrUnknownCellState = errors.New("unknown cell state")
	ErrUnknownTurn      = errors.New("unknown turn")
	ErrInvalidSnapshot  = errors.New("invalid game snapshot")
)

type CellState uint8

const (
	Blank CellState = iota
	Selected
	Filled
)

var cellStateNames = [...]string{
	Blank:    "blank",
	Selected: "selected",
	Filled:   "filled",
}

func (that CellState) String() string {
	if int(that) < len(cellStateNames) {
		return cellStateNames[that]
	}
	return fmt.Sprintf("CellState(%d)", that)
}

func (that CellState) MarshalText() ([]byte, error) {
	if int(that) >= len(cellStateNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCellState, that)
	}
	return []byte(cellStateNames[that]), nil
}

func (that *CellState) UnmarshalText(text []byte) error {
	for state, name := range cellStateNames {
		if name == string(text) {
			*that = CellState(state)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownCellState, text)
}

// Turn - whose move is about to be committed.
type Turn uint8

const (
	HumanPending Turn = iota
	ComputerPending
)

func (that Turn) String() string {
	if that == ComputerPending {
		return "computer"
	}
	return "human"
}

func (that Turn) MarshalText() ([]byte, error) {
	switch that {
	case HumanPending, ComputerPending:
		return []byte(that.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTurn, that)
	}
}

func (that *Turn) UnmarshalText(text []byte) error {
	switch string(text) {
	case "human":
		*that = HumanPending
	case "computer":
		*that = ComputerPending
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTurn, text)
	}
	return nil
}

// Phase - observable position of a snapshot in the turn cycle.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseSelecting     Phase = "selecting"
	PhaseReadyToCommit Phase = "ready_to_commit"
	PhaseFinished      Phase = "finished"
)

// Board is stored row-major; being an array, it is copied with the Game.
type Board [GameFieldSize][GameFieldSize]CellState

func (that Board) CountCells(state CellState) int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if cell == state {
				count++
			}
		}
	}
	return count
}

// Game - one immutable snapshot of a match.
type Game struct {
	Board         Board `json:"board"`
	SelectedCount int   `json:"selected_count"`
	Turn          Turn  `json:"turn"`
}

func NewGame() Game {
	return Game{Turn: HumanPending}
}

func InBounds(row, col int) bool {
	return row >= 0 && row < GameFieldSize && col >= 0 && col < GameFieldSize
}

func (that Game) Cell(row, col int) CellState {
	return that.Board[row][col]
}

// IsGameFinished - true once fewer than MinSelection cells are left unfilled.
func (that Game) IsGameFinished() bool {
	return that.Board.CountCells(Filled) > GameFieldSize*GameFieldSize-MinSelection
}

// Result is derived from Turn only and is meaningful once the game is finished.
func (that Game) Result() string {
	if that.Turn == HumanPending {
		return ResultLost
	}
	return ResultWon
}

func (that Game) CanFinishMove() bool {
	return that.SelectedCount >= MinSelection && !that.IsGameFinished()
}

func (that Game) Phase() Phase {
	switch {
	case that.IsGameFinished():
		return PhaseFinished
	case that.SelectedCount >= MaxSelection:
		return PhaseReadyToCommit
	case that.SelectedCount > 0:
		return PhaseSelecting
	default:
		return PhaseIdle
	}
}

// View is the render-side projection of a Game.
type View struct {
	Game

	Finished      bool   `json:"finished"`
	Result        string `json:"result,omitempty"`
	Phase         Phase  `json:"phase"`
	CanFinishMove bool   `json:"can_finish_move"`
}

func (that Game) View() View {
	view := View{
		Game:          that,
		Finished:      that.IsGameFinished(),
		Phase:         that.Phase(),
		CanFinishMove: that.CanFinishMove(),
	}
	if view.Finished {
		view.Result = that.Result()
	}
	return view
}

func (that Game) MarshalBinary() ([]byte, error) {
	type plain Game
	return json.Marshal(plain(that))
}

func (that *Game) UnmarshalBinary(data []byte) error {
	type plain Game
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	game := Game(decoded)
	if err := game.validate(); err != nil {
		return err
	}

	*that = game
	return nil
}

// validate - checks that the selection counter agrees with the board.
func (that Game) validate() error {
	if that.SelectedCount < 0 || that.SelectedCount > MaxSelection {
		return fmt.Errorf("%w: selected count %d out of range", ErrInvalidSnapshot, that.SelectedCount)
	}

	if selected := that.Board.CountCells(Selected); selected != that.SelectedCount {
		return fmt.Errorf("%w: selected count %d, board has %d", ErrInvalidSnapshot, that.SelectedCount, selected)
	}

	return nil
}
