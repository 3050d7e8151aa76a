package gridfill

import (
	"fmt"

	"github.com/rocketscienceinc/gridfill-backend/internal/apperror"
	"github.com/rocketscienceinc/gridfill-backend/internal/entity"
)

// ErrOutOfBounds is returned when a move addresses a cell outside the board.
var ErrOutOfBounds = apperror.ErrOutOfBounds

type bot interface {
	PickCount() int
}

// GameController applies transitions to game snapshots. Every method takes a
// snapshot by value and returns its replacement; the input is never mutated.
type GameController struct {
	bot bot
}

func NewGameController(bot bot) *GameController {
	return &GameController{bot: bot}
}

// SelectCell - marks a blank cell as selected while the selection cap allows it.
func (that *GameController) SelectCell(game entity.Game, row, col int) (entity.Game, error) {
	if !entity.InBounds(row, col) {
		return game, fmt.Errorf("%w: row %d, col %d", ErrOutOfBounds, row, col)
	}

	if game.Board[row][col] != entity.Blank || game.SelectedCount >= entity.MaxSelection {
		return game, nil
	}

	game.Board[row][col] = entity.Selected
	game.SelectedCount++
	game.Turn = entity.ComputerPending

	return game, nil
}

// FinishMove - commits the selection and, unless that ends the game, lets the computer answer.
func (that *GameController) FinishMove(game entity.Game) entity.Game {
	game.Board = changeCellsState(game.Board, entity.Selected, entity.Filled, game.SelectedCount)
	game.SelectedCount = 0

	if game.IsGameFinished() {
		return game
	}

	return that.ComputerMove(game)
}

// ComputerMove - fills up to PickCount blank cells in row-major order.
func (that *GameController) ComputerMove(game entity.Game) entity.Game {
	count := that.bot.PickCount()

	game.Board = changeCellsState(game.Board, entity.Blank, entity.Filled, count)
	game.Turn = entity.HumanPending

	return game
}

func (that *GameController) RestartGame() entity.Game {
	return entity.NewGame()
}

func (that *GameController) IsGameFinished(game entity.Game) bool {
	return game.IsGameFinished()
}

// changeCellsState - converts at most limit cells in state from to state to, row-major.
func changeCellsState(board entity.Board, from, to entity.CellState, limit int) entity.Board {
	for row := range board {
		for col := range board[row] {
			if limit <= 0 {
				return board
			}

			if board[row][col] == from {
				board[row][col] = to
				limit--
			}
		}
	}

	return board
}
