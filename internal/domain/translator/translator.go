package translator

import (
	"errors"

	"fibaro-hap-bridge/internal/domain/model"
)

var (
	ErrInvalidWindowPosition = errors.New("invalid window position")
	ErrUnknownCharacteristic = errors.New("no decoder for characteristic")
)

// Input is everything a decoder may look at. Decoders never mutate
// Properties; only color-aware decoders write Service.Color.
type Input struct {
	Characteristic *model.Characteristic
	Service        *model.Service
	Identity       model.Identity
	Properties     model.Properties
	Security       model.SecurityStatus
}

// Decoder translates raw hub properties into one characteristic value.
type Decoder interface {
	Decode(in Input) (interface{}, error)
}

type DecoderFunc func(in Input) (interface{}, error)

func (f DecoderFunc) Decode(in Input) (interface{}, error) {
	return f(in)
}

// Completion receives a decoded value or an error, exactly once.
type Completion func(value interface{}, err error)

// Sink is where a decoded value goes: either a Callback or a Direct write.
type Sink interface {
	emit(c *model.Characteristic, value interface{}, err error)
}

// Callback delivers results through a completion.
type Callback Completion

func (cb Callback) emit(_ *model.Characteristic, value interface{}, err error) {
	if err != nil {
		cb(nil, err)
		return
	}
	cb(value, nil)
}

// Direct writes results into the characteristic, tagged as hub-originated.
// Failed decodes leave the characteristic untouched and go to OnError.
type Direct struct {
	OnError func(c *model.Characteristic, err error)
}

func (d Direct) emit(c *model.Characteristic, value interface{}, err error) {
	if err != nil {
		if d.OnError != nil {
			d.OnError(c, err)
		}
		return
	}
	c.SetValue(value, model.OriginHub)
}

// SinkFor returns a Callback sink for fn, or a Direct sink if fn is nil.
func SinkFor(fn Completion) Sink {
	if fn == nil {
		return Direct{}
	}
	return Callback(fn)
}

// Run decodes in with d and emits exactly one result to sink.
func Run(d Decoder, sink Sink, in Input) {
	v, err := d.Decode(in)
	sink.emit(in.Characteristic, v, err)
}
