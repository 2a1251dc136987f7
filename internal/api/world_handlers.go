package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/annel0/voxel-world/internal/entity"
	"github.com/annel0/voxel-world/internal/game"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world"
	"github.com/annel0/voxel-world/internal/world/block"
	"github.com/gin-gonic/gin"
)

// BlockInfo описывает клетку мира
type BlockInfo struct {
	Pos     vec.Vec3      `json:"pos"`
	ID      block.BlockID `json:"id"`
	Name    string        `json:"name"`
	Shown   bool          `json:"shown"`
	Exposed bool          `json:"exposed"`
}

// PutBlockRequest – запрос на установку блока
type PutBlockRequest struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Z     int    `json:"z"`
	Block string `json:"block" binding:"required"` // Имя палитры: BRICK, GRASS, ...
}

// TargetInfo – результат луча взгляда
type TargetInfo struct {
	Hit      *vec.Vec3 `json:"hit"`
	Previous *vec.Vec3 `json:"previous"`
	Block    string    `json:"block,omitempty"`
}

// PlayerInfo – состояние игрока
type PlayerInfo struct {
	Position    vec.Vec3Float `json:"position"`
	Rotation    vec.Vec2Float `json:"rotation"`
	Sight       vec.Vec3Float `json:"sight"`
	DY          float64       `json:"dy"`
	Flying      bool          `json:"flying"`
	Airborne    bool          `json:"airborne"`
	State       string        `json:"state"`
	ActiveBlock string        `json:"active_block"`
	Inventory   []string      `json:"inventory"`
	Target      TargetInfo    `json:"target"`
}

// InputRequest – фронты ввода, применяемые к игроку по порядку полей
type InputRequest struct {
	Press     []string    `json:"press"`   // forward, backward, left, right
	Release   []string    `json:"release"` // forward, backward, left, right
	Jump      *bool       `json:"jump"`
	ToggleFly bool        `json:"toggle_fly"`
	Select    *int        `json:"select"`
	Look      *[2]float64 `json:"look"`  // Смещение мыши dx, dy
	Click     string      `json:"click"` // left – сломать, right – поставить
}

// ClickResult – результат клика
type ClickResult struct {
	Action string    `json:"action"`
	Pos    *vec.Vec3 `json:"pos"`
}

var directions = map[string]entity.Direction{
	"forward":  entity.DirForward,
	"backward": entity.DirBackward,
	"left":     entity.DirLeft,
	"right":    entity.DirRight,
}

// parseVec3 читает координаты x, y, z из query
func parseVec3(c *gin.Context) (vec.Vec3, error) {
	var out [3]int
	for i, name := range []string{"x", "y", "z"} {
		raw, ok := c.GetQuery(name)
		if !ok {
			return vec.Vec3{}, fmt.Errorf("параметр %s обязателен", name)
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return vec.Vec3{}, fmt.Errorf("параметр %s: %w", name, err)
		}
		out[i] = v
	}
	return vec.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}

func target(s *game.Session) TargetInfo {
	hit, previous := s.Target()
	info := TargetInfo{Hit: hit, Previous: previous}
	if hit != nil {
		id, _ := s.World.BlockAt(*hit)
		info.Block = block.Name(id)
	}
	return info
}

// handleGetBlock возвращает клетку мира
func (rs *RestServer) handleGetBlock(c *gin.Context) {
	pos, err := parseVec3(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	var (
		info  BlockInfo
		found bool
	)
	rs.withSession(func(s *game.Session) {
		var id block.BlockID
		id, found = s.World.BlockAt(pos)
		info = BlockInfo{
			Pos:     pos,
			ID:      id,
			Name:    block.Name(id),
			Shown:   s.World.IsShown(pos),
			Exposed: s.World.Exposed(pos),
		}
	})

	if !found {
		respondError(c, http.StatusNotFound, fmt.Errorf("%w: (%d,%d,%d)", world.ErrNotFound, pos.X, pos.Y, pos.Z))
		return
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Блок найден", Data: info})
}

// handlePutBlock ставит блок
func (rs *RestServer) handlePutBlock(c *gin.Context) {
	var req PutBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	id, ok := block.Lookup(req.Block)
	if !ok {
		respondError(c, http.StatusBadRequest, fmt.Errorf("%w: неизвестный блок %q", world.ErrInvalidPlacement, req.Block))
		return
	}

	pos := vec.Vec3{X: req.X, Y: req.Y, Z: req.Z}
	var err error
	rs.withSession(func(s *game.Session) { err = s.World.AddBlock(pos, id) })
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Блок поставлен",
		Data:    BlockInfo{Pos: pos, ID: id, Name: block.Name(id)},
	})
}

// handleDeleteBlock удаляет блок
func (rs *RestServer) handleDeleteBlock(c *gin.Context) {
	pos, err := parseVec3(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	var id block.BlockID
	rs.withSession(func(s *game.Session) { id, err = s.World.RemoveBlock(pos) })
	if errors.Is(err, world.ErrNotFound) {
		respondError(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Блок удалён",
		Data:    BlockInfo{Pos: pos, ID: id, Name: block.Name(id)},
	})
}

// handleHit возвращает блок под прицелом игрока
func (rs *RestServer) handleHit(c *gin.Context) {
	var info TargetInfo
	rs.withSession(func(s *game.Session) { info = target(s) })
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Луч взгляда", Data: info})
}

// handleShown возвращает видимые блоки сектора sx, sz
func (rs *RestServer) handleShown(c *gin.Context) {
	sx, errX := strconv.Atoi(c.Query("sx"))
	sz, errZ := strconv.Atoi(c.Query("sz"))
	if errX != nil || errZ != nil {
		respondError(c, http.StatusBadRequest, errors.New("параметры sx и sz обязательны"))
		return
	}

	var blocks []world.ShownBlock
	rs.withSession(func(s *game.Session) { blocks = s.World.ShownInSector(vec.Vec2{X: sx, Y: sz}) })
	if blocks == nil {
		blocks = []world.ShownBlock{}
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Видимые блоки сектора", Data: blocks})
}

// handlePlayer возвращает состояние игрока
func (rs *RestServer) handlePlayer(c *gin.Context) {
	var info PlayerInfo
	rs.withSession(func(s *game.Session) { info = playerInfo(s) })
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Игрок", Data: info})
}

func playerInfo(s *game.Session) PlayerInfo {
	p := s.Player
	inventory := make([]string, 0, len(p.Inventory))
	for _, id := range p.Inventory {
		inventory = append(inventory, block.Name(id))
	}
	state := ""
	if p.CurrentState != nil {
		state = p.CurrentState.Name()
	}
	return PlayerInfo{
		Position:    p.Position,
		Rotation:    p.Rotation,
		Sight:       p.SightVector(),
		DY:          p.DY,
		Flying:      p.Flying,
		Airborne:    p.Jumped,
		State:       state,
		ActiveBlock: block.Name(p.ActiveBlock),
		Inventory:   inventory,
		Target:      target(s),
	}
}

// handleInput применяет фронты ввода к игроку
func (rs *RestServer) handleInput(c *gin.Context) {
	var req InputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	for _, name := range append(append([]string(nil), req.Press...), req.Release...) {
		if _, ok := directions[name]; !ok {
			respondError(c, http.StatusBadRequest, fmt.Errorf("неизвестное направление %q", name))
			return
		}
	}
	if req.Click != "" && req.Click != "left" && req.Click != "right" {
		respondError(c, http.StatusBadRequest, fmt.Errorf("неизвестная кнопка %q", req.Click))
		return
	}

	var (
		info   PlayerInfo
		click  *ClickResult
		err    error
		status = http.StatusOK
	)
	ctx := c.Request.Context()
	rs.withSession(func(s *game.Session) {
		p := s.Player
		for _, name := range req.Press {
			p.Press(directions[name])
		}
		for _, name := range req.Release {
			p.Release(directions[name])
		}
		if req.Jump != nil {
			p.SetJumping(*req.Jump)
		}
		if req.ToggleFly {
			p.ToggleFlying()
		}
		if req.Select != nil {
			p.Select(*req.Select)
		}
		if req.Look != nil {
			p.Look(req.Look[0], req.Look[1])
		}

		switch req.Click {
		case "left":
			var pos *vec.Vec3
			pos, err = s.Mine(ctx)
			click = &ClickResult{Action: "mine", Pos: pos}
		case "right":
			var pos *vec.Vec3
			pos, err = s.Place(ctx)
			click = &ClickResult{Action: "place", Pos: pos}
		}
		info = playerInfo(s)
	})

	switch {
	case errors.Is(err, game.ErrUnbreakable), errors.Is(err, game.ErrBlocked):
		status = http.StatusConflict
	case err != nil:
		status = http.StatusBadRequest
	}
	if err != nil {
		c.JSON(status, GenericResponse{Success: false, Message: err.Error(), Data: gin.H{"player": info, "click": click}})
		return
	}

	c.JSON(status, GenericResponse{
		Success: true,
		Message: "Ввод применён",
		Data:    gin.H{"player": info, "click": click},
	})
}
