package services

import (
	"encoding/json"
	"fmt"

	"github.com/codyseavey/sneaker-tracker/internal/models"
)

// Command is a typed user intent applied by Tracker.Dispatch.
type Command interface {
	CommandName() string
}

// SelectMode switches between the all, watchlist and inventory views.
type SelectMode struct {
	Mode models.ViewMode
}

// SetBrandFilter narrows the all/watchlist lists to one brand ("" clears).
type SetBrandFilter struct {
	Brand string
}

// OpenDetail shows one shoe's detail.
type OpenDetail struct {
	ID string
}

// CloseDetail returns to the list.
type CloseDetail struct{}

// ToggleWatch adds or removes a shoe id from the watchlist.
type ToggleWatch struct {
	ID string
}

// AddInventory creates a custom shoe from the inventory form.
type AddInventory struct {
	Fields InventoryFields
}

// ViewInTracker jumps from an inventory card to that shoe's detail in the all view.
type ViewInTracker struct {
	ID string
}

func (SelectMode) CommandName() string     { return "select_mode" }
func (SetBrandFilter) CommandName() string { return "set_brand_filter" }
func (OpenDetail) CommandName() string     { return "open_detail" }
func (CloseDetail) CommandName() string    { return "close_detail" }
func (ToggleWatch) CommandName() string    { return "toggle_watch" }
func (AddInventory) CommandName() string   { return "add_inventory" }
func (ViewInTracker) CommandName() string  { return "view_in_tracker" }

// commandEnvelope is the JSON form of a command, e.g.
//
//	{"type":"select_mode","mode":"watchlist"}
//	{"type":"add_inventory","fields":{"name":"Samba","brand":"Adidas","status":"target"}}
type commandEnvelope struct {
	Type   string          `json:"type"`
	Mode   models.ViewMode `json:"mode"`
	Brand  string          `json:"brand"`
	ID     string          `json:"id"`
	Fields InventoryFields `json:"fields"`
}

// DecodeCommand parses one JSON command.
func DecodeCommand(data []byte) (Command, error) {
	var env commandEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &ValidationError{Field: "command", Message: fmt.Sprintf("invalid command: %v", err)}
	}
	return env.command()
}

// DecodeCommands parses a JSON array of commands, as used by scripted sessions.
func DecodeCommands(data []byte) ([]Command, error) {
	var envs []commandEnvelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return nil, &ValidationError{Field: "commands", Message: fmt.Sprintf("invalid command list: %v", err)}
	}
	cmds := make([]Command, 0, len(envs))
	for i, env := range envs {
		cmd, err := env.command()
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func (e commandEnvelope) command() (Command, error) {
	switch e.Type {
	case "select_mode":
		return SelectMode{Mode: e.Mode}, nil
	case "set_brand_filter":
		return SetBrandFilter{Brand: e.Brand}, nil
	case "open_detail":
		return OpenDetail{ID: e.ID}, nil
	case "close_detail":
		return CloseDetail{}, nil
	case "toggle_watch":
		return ToggleWatch{ID: e.ID}, nil
	case "add_inventory":
		return AddInventory{Fields: e.Fields}, nil
	case "view_in_tracker":
		return ViewInTracker{ID: e.ID}, nil
	default:
		return nil, &ValidationError{Field: "type", Message: fmt.Sprintf("unknown command type %q", e.Type)}
	}
}
