package http

import (
	"encoding/json"

	"github.com/mkravets/codeshare-server/internal/core"
	"github.com/mkravets/codeshare-server/internal/proto"
)

// inboundToCommand decodes a protocol event into a hub command. Unknown
// event names yield (nil, nil) and are ignored by the caller; field-level
// validation (empty room, empty name) is the hub's job.
func inboundToCommand(client *core.Client, inbound proto.Inbound) (*core.Command, error) {
	switch inbound.Event {
	case proto.InboundJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, err
		}
		return &core.Command{
			Kind:   core.CommandJoin,
			Client: client,
			Room:   join.RoomID,
			Name:   join.DisplayName,
		}, nil
	case proto.InboundLeaveRoom:
		return &core.Command{
			Kind:   core.CommandLeaveRoom,
			Client: client,
		}, nil
	case proto.InboundCodeChange:
		var change proto.CodeChangeData
		if err := json.Unmarshal(inbound.Data, &change); err != nil {
			return nil, err
		}
		return &core.Command{
			Kind:   core.CommandCodeChange,
			Client: client,
			Room:   change.RoomID,
			Code:   change.Code,
		}, nil
	case proto.InboundTyping:
		var typing proto.TypingData
		if err := json.Unmarshal(inbound.Data, &typing); err != nil {
			return nil, err
		}
		return &core.Command{
			Kind:   core.CommandTyping,
			Client: client,
			Room:   typing.RoomID,
			Name:   typing.DisplayName,
		}, nil
	case proto.InboundLanguageChange:
		var change proto.LanguageChangeData
		if err := json.Unmarshal(inbound.Data, &change); err != nil {
			return nil, err
		}
		return &core.Command{
			Kind:     core.CommandLanguageChange,
			Client:   client,
			Room:     change.RoomID,
			Language: change.Language,
		}, nil
	case proto.InboundCompileCode:
		var compile proto.CompileCodeData
		if err := json.Unmarshal(inbound.Data, &compile); err != nil {
			return nil, err
		}
		return &core.Command{
			Kind:     core.CommandCompileCode,
			Client:   client,
			Room:     compile.RoomID,
			Code:     compile.Code,
			Language: compile.Language,
			Version:  compile.Version,
		}, nil
	default:
		return nil, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventMembers:
		return proto.Outbound{Event: proto.OutboundUserJoined, Data: event.Members}
	case core.EventCodeUpdate:
		return proto.Outbound{Event: proto.OutboundCodeUpdate, Data: event.Code}
	case core.EventUserTyping:
		return proto.Outbound{Event: proto.OutboundUserTyping, Data: event.User}
	case core.EventLanguageUpdate:
		return proto.Outbound{Event: proto.OutboundLanguageUpdate, Data: event.Language}
	case core.EventCodeResponse:
		return proto.Outbound{Event: proto.OutboundCodeResponse, Data: event.Result}
	default:
		return proto.Outbound{}
	}
}
