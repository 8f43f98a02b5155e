package nakama

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"numbergame/internal/app"
	"numbergame/internal/domain"
)

var errBadPayload = errors.New("invalid payload")

// pickRequest is either an end or a sequence index chosen by the human.
type pickRequest struct {
	End      domain.End
	Index    int
	HasIndex bool
}

func marshalStruct(fields map[string]interface{}) ([]byte, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(s)
}

func unmarshalStruct(data []byte) (*structpb.Struct, error) {
	s := &structpb.Struct{}
	if len(data) == 0 {
		return s, nil
	}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadPayload, err)
	}
	return s, nil
}

// intField reads an integral number. ok is false when the key is absent.
func intField(s *structpb.Struct, key string) (int, bool, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, false, nil
	}
	n, err := toInt(v)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s: %v", errBadPayload, key, err)
	}
	return n, true, nil
}

func toInt(v *structpb.Value) (int, error) {
	num, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, errors.New("not a number")
	}
	f := num.NumberValue
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%v is not an integer", f)
	}
	return int(f), nil
}

func decodeStartRequest(data []byte) (app.MatchRequest, error) {
	s, err := unmarshalStruct(data)
	if err != nil {
		return app.MatchRequest{}, err
	}

	req := app.MatchRequest{HumanPlayer: domain.Player1}
	player, ok, err := intField(s, "player")
	if err != nil {
		return app.MatchRequest{}, err
	}
	if ok {
		req.HumanPlayer = domain.PlayerID(player)
	}

	if v, ok := s.GetFields()["strategy"]; ok {
		name, isString := v.GetKind().(*structpb.Value_StringValue)
		if !isString {
			return app.MatchRequest{}, fmt.Errorf("%w: strategy is not a string", errBadPayload)
		}
		strategy, known := domain.ParseStrategy(name.StringValue)
		if !known {
			return app.MatchRequest{}, fmt.Errorf("%w: unknown strategy %q", errBadPayload, name.StringValue)
		}
		req.Strategy = strategy
	}

	if v, ok := s.GetFields()["sequence"]; ok {
		list := v.GetListValue()
		if list == nil {
			return app.MatchRequest{}, fmt.Errorf("%w: sequence is not a list", errBadPayload)
		}
		seq := make([]int, 0, len(list.GetValues()))
		for i, item := range list.GetValues() {
			n, err := toInt(item)
			if err != nil {
				return app.MatchRequest{}, fmt.Errorf("%w: sequence[%d]: %v", errBadPayload, i, err)
			}
			seq = append(seq, n)
		}
		req.Sequence = seq
	}
	return req, nil
}

func decodePickRequest(data []byte) (pickRequest, error) {
	s, err := unmarshalStruct(data)
	if err != nil {
		return pickRequest{}, err
	}

	index, ok, err := intField(s, "index")
	if err != nil {
		return pickRequest{}, err
	}
	if ok {
		return pickRequest{Index: index, HasIndex: true}, nil
	}

	v, ok := s.GetFields()["end"]
	if !ok {
		return pickRequest{}, fmt.Errorf("%w: missing end or index", errBadPayload)
	}
	end, known := domain.ParseEnd(v.GetStringValue())
	if !known {
		return pickRequest{}, fmt.Errorf("%w: unknown end %q", errBadPayload, v.GetStringValue())
	}
	return pickRequest{End: end}, nil
}

// eventToWire maps an app event to its op code and JSON fields.
func eventToWire(ev app.Event) (int64, map[string]interface{}, error) {
	switch p := ev.Payload.(type) {
	case app.MatchStartedPayload:
		return OpMatchStarted, map[string]interface{}{
			"match_id":     p.MatchID,
			"sequence":     intsToList(p.Sequence),
			"human_player": int(p.HumanPlayer),
			"strategy":     string(p.Strategy),
			"current_turn": int(p.CurrentTurn),
			"opponent": map[string]interface{}{
				"id":     p.Opponent.ID,
				"name":   p.Opponent.Name,
				"player": int(p.Opponent.Player),
			},
			"note": p.Note,
		}, nil
	case app.NumberPickedPayload:
		fields := map[string]interface{}{
			"player":      int(p.Player),
			"end":         p.End.String(),
			"index":       p.Index,
			"value":       p.Value,
			"scores":      scoresToMap(p.Scores),
			"next_turn":   int(p.NextTurn),
			"by_computer": p.ByComputer,
			"window": map[string]interface{}{
				"left":  p.WindowLeft,
				"right": p.WindowRight,
			},
			"note": p.Note,
		}
		if p.Rationale != nil {
			fields["rationale"] = map[string]interface{}{
				"left_taken":  p.Rationale.LeftTaken,
				"right_taken": p.Rationale.RightTaken,
				"guaranteed":  p.Rationale.Guaranteed,
				"forced":      p.Rationale.Forced,
				"text":        p.Rationale.String(),
			}
		}
		return OpNumberPicked, fields, nil
	case app.MatchEndedPayload:
		return OpMatchEnded, map[string]interface{}{
			"winner":    int(p.Winner),
			"result":    p.Winner.String(),
			"scores":    scoresToMap(p.Scores),
			"human_won": p.HumanWon,
			"note":      p.Note,
		}, nil
	default:
		return 0, nil, fmt.Errorf("unknown event kind: %v", ev.Kind)
	}
}

func scoresToMap(s domain.Scoreboard) map[string]interface{} {
	return map[string]interface{}{
		"player1": s.Player1,
		"player2": s.Player2,
	}
}

func intsToList(values []int) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
