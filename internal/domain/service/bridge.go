package service

import (
	"context"
	"errors"
	"fibaro-hap-bridge/internal/domain/model"
	"fibaro-hap-bridge/internal/domain/translator"
	"fibaro-hap-bridge/internal/ports"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/amimof/huego"
	"github.com/sirupsen/logrus"
)

var ErrAccessoryNotFound = errors.New("accessory not found")

// accessory pairs an accessory with its bound decoders. mu serializes decodes
// so the color state sees one update at a time.
type accessory struct {
	mu       sync.Mutex
	model    *model.Accessory
	decoders map[model.CharacteristicType]translator.Decoder
}

type BridgeService struct {
	store    ports.PropertyStore
	configs  *ConfigService
	registry *translator.Registry
	ids      model.CharacteristicIDs
	log      *logrus.Logger

	mu          sync.RWMutex
	cfg         *model.Config
	accessories map[string]*accessory
	order       []string
	byDevice    map[string][]string
}

func NewBridgeService(store ports.PropertyStore, configs *ConfigService, log *logrus.Logger) *BridgeService {
	if log == nil {
		log = logrus.New()
	}
	ids := model.HAPCharacteristicIDs()
	return &BridgeService{
		store:       store,
		configs:     configs,
		registry:    translator.NewRegistry(ids),
		ids:         ids,
		log:         log,
		accessories: make(map[string]*accessory),
		byDevice:    make(map[string][]string),
	}
}

// Load reads the configuration and rebuilds every accessory from it.
func (s *BridgeService) Load(ctx context.Context) error {
	cfg, err := s.configs.Load(ctx)
	if err != nil {
		return err
	}

	accessories := make(map[string]*accessory, len(cfg.Accessories))
	order := make([]string, 0, len(cfg.Accessories))
	byDevice := make(map[string][]string)
	for _, ac := range cfg.Accessories {
		a, err := s.bind(ac)
		if err != nil {
			return fmt.Errorf("accessory %s: %w", ac.ID, err)
		}
		accessories[ac.ID] = a
		order = append(order, ac.ID)
		byDevice[ac.DeviceID] = append(byDevice[ac.DeviceID], ac.ID)
	}

	s.mu.Lock()
	s.cfg = cfg
	s.accessories = accessories
	s.order = order
	s.byDevice = byDevice
	s.mu.Unlock()

	s.log.WithField("accessories", len(order)).Info("accessories loaded")
	return nil
}

func (s *BridgeService) bind(ac *model.AccessoryConfig) (*accessory, error) {
	svc := &model.Service{Kind: ac.Service}
	if ac.Color {
		svc.Color = &model.ColorState{}
	}
	decoders := make(map[model.CharacteristicType]translator.Decoder, len(ac.Characteristics))
	for _, cc := range ac.Characteristics {
		t, ok := model.CharacteristicTypeByName(cc.Name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown characteristic %q", ErrInvalidConfig, cc.Name)
		}
		d, ok := s.registry.Resolve(t)
		if !ok {
			return nil, fmt.Errorf("%s: %w", cc.Name, translator.ErrUnknownCharacteristic)
		}
		d, err := translator.Calibrate(d, cc.Formula)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, cc.Name, err)
		}
		decoders[t] = d
		svc.Characteristics = append(svc.Characteristics, model.NewCharacteristic(cc.Name, t, cc.Bounds()))
	}
	return &accessory{
		model: &model.Accessory{
			ID:       ac.ID,
			Name:     ac.Name,
			Identity: model.Identity{AccessoryID: ac.ID, DeviceID: ac.DeviceID},
			Service:  svc,
		},
		decoders: decoders,
	}, nil
}

func (s *BridgeService) lookup(id string) (*accessory, error) {
	s.mu.RLock()
	a, ok := s.accessories[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccessoryNotFound, id)
	}
	return a, nil
}

func (s *BridgeService) list() []*accessory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*accessory, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, s.accessories[id])
	}
	return list
}

func (s *BridgeService) usesSecurity(svc *model.Service) bool {
	return svc.Characteristic(s.ids.SecuritySystemCurrentState) != nil ||
		svc.Characteristic(s.ids.SecuritySystemTargetState) != nil
}

// snapshot fetches what the accessory's decoders need from the property source.
func (s *BridgeService) snapshot(ctx context.Context, a *accessory) (model.Properties, model.SecurityStatus, error) {
	security := s.usesSecurity(a.model.Service)
	props, err := s.store.Properties(ctx, a.model.Identity.DeviceID)
	if errors.Is(err, ports.ErrNoSnapshot) && security {
		// Security panels decode from the status alone.
		props, err = model.Properties{}, nil
	}
	if err != nil {
		return nil, "", err
	}
	var status model.SecurityStatus
	if security {
		status, err = s.store.SecurityStatus(ctx)
		if err != nil {
			return nil, "", err
		}
	}
	return props, status, nil
}

// Refresh decodes every characteristic of accessory id from the latest
// snapshot and writes the results directly into the characteristics.
func (s *BridgeService) Refresh(ctx context.Context, id string) error {
	a, err := s.lookup(id)
	if err != nil {
		return err
	}
	return s.refresh(ctx, a)
}

func (s *BridgeService) refresh(ctx context.Context, a *accessory) error {
	props, status, err := s.snapshot(ctx, a)
	if err != nil {
		return fmt.Errorf("refresh %s: %w", a.model.ID, err)
	}

	log := s.log.WithField("accessory", a.model.ID)
	sink := translator.Direct{OnError: func(c *model.Characteristic, err error) {
		log.WithFields(logrus.Fields{
			"characteristic": c.Name,
			"error":          err,
		}).Warn("decode failed")
	}}

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, c := range a.model.Service.Characteristics {
		translator.Run(a.decoders[c.Type], sink, translator.Input{
			Characteristic: c,
			Service:        a.model.Service,
			Identity:       a.model.Identity,
			Properties:     props,
			Security:       status,
		})
	}
	log.Debug("accessory refreshed")
	return nil
}

// RefreshAll refreshes every accessory. Devices the source has not seen yet
// are skipped.
func (s *BridgeService) RefreshAll(ctx context.Context) error {
	var errs []error
	for _, a := range s.list() {
		err := s.refresh(ctx, a)
		if errors.Is(err, ports.ErrNoSnapshot) {
			s.log.WithField("accessory", a.model.ID).Debug("no snapshot yet")
			continue
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Run refreshes all accessories every interval until ctx is done.
func (s *BridgeService) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := s.RefreshAll(ctx); err != nil {
			s.log.WithError(err).Warn("refresh failed")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

type readResult struct {
	value interface{}
	err   error
}

// ReadCharacteristic decodes one characteristic on demand and returns the
// value delivered to the completion.
func (s *BridgeService) ReadCharacteristic(ctx context.Context, id, name string) (interface{}, error) {
	a, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	t, ok := model.CharacteristicTypeByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", translator.ErrUnknownCharacteristic, name)
	}
	c := a.model.Service.Characteristic(t)
	if c == nil {
		return nil, fmt.Errorf("%w: %s has no %s", translator.ErrUnknownCharacteristic, id, name)
	}
	props, status, err := s.snapshot(ctx, a)
	if err != nil {
		return nil, err
	}

	done := make(chan readResult, 1)
	a.mu.Lock()
	translator.Run(a.decoders[t], translator.Callback(func(v interface{}, err error) {
		done <- readResult{value: v, err: err}
	}), translator.Input{
		Characteristic: c,
		Service:        a.model.Service,
		Identity:       a.model.Identity,
		Properties:     props,
		Security:       status,
	})
	a.mu.Unlock()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *BridgeService) view(a *accessory) *ports.AccessoryView {
	a.mu.Lock()
	defer a.mu.Unlock()
	m := a.model
	v := &ports.AccessoryView{
		ID:              m.ID,
		Name:            m.Name,
		DeviceID:        m.Identity.DeviceID,
		Service:         m.Service.Kind,
		Characteristics: make([]ports.CharacteristicValue, 0, len(m.Service.Characteristics)),
	}
	if cs := m.Service.Color; cs != nil {
		v.Color = &ports.ColorView{RGB: cs.RGB}
		if finite(cs.HSV.Hue) && finite(cs.HSV.Saturation) && finite(cs.HSV.Value) {
			hsv := cs.HSV
			v.Color.HSV = &hsv
		}
	}
	for _, c := range m.Service.Characteristics {
		v.Characteristics = append(v.Characteristics, ports.CharacteristicValue{
			Name:   c.Name,
			Type:   c.Type.String(),
			Value:  jsonValue(c.Value()),
			Origin: c.Origin(),
		})
	}
	return v
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// jsonValue drops non-finite floats, which JSON cannot carry.
func jsonValue(v interface{}) interface{} {
	if f, ok := v.(float64); ok && !finite(f) {
		return nil
	}
	return v
}

func (s *BridgeService) GetAccessories(ctx context.Context) ([]*ports.AccessoryView, error) {
	list := s.list()
	views := make([]*ports.AccessoryView, 0, len(list))
	for _, a := range list {
		views = append(views, s.view(a))
	}
	return views, nil
}

func (s *BridgeService) GetAccessory(ctx context.Context, id string) (*ports.AccessoryView, error) {
	a, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return s.view(a), nil
}

// GetLights returns the Hue view of every lightbulb accessory, keyed by accessory id.
func (s *BridgeService) GetLights(ctx context.Context) (map[string]*huego.Light, error) {
	lights := make(map[string]*huego.Light)
	for _, a := range s.list() {
		a.mu.Lock()
		l, ok := s.registry.HueLight(a.model)
		a.mu.Unlock()
		if ok {
			lights[a.model.ID] = l
		}
	}
	return lights, nil
}

// IngestProperties stores a pushed snapshot and refreshes the accessories
// bound to that device.
func (s *BridgeService) IngestProperties(ctx context.Context, deviceID string, props model.Properties) error {
	if err := s.store.PutProperties(ctx, deviceID, props); err != nil {
		return err
	}
	s.mu.RLock()
	ids := append([]string(nil), s.byDevice[deviceID]...)
	s.mu.RUnlock()

	var errs []error
	for _, id := range ids {
		if err := s.Refresh(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// IngestSecurityStatus stores the alarm status and refreshes security accessories.
func (s *BridgeService) IngestSecurityStatus(ctx context.Context, status model.SecurityStatus) error {
	if err := s.store.PutSecurityStatus(ctx, status); err != nil {
		return err
	}
	var errs []error
	for _, a := range s.list() {
		if !s.usesSecurity(a.model.Service) {
			continue
		}
		err := s.refresh(ctx, a)
		if err != nil && !errors.Is(err, ports.ErrNoSnapshot) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *BridgeService) GetConfig(ctx context.Context) (*model.Config, error) {
	s.mu.RLock()
	cfg := s.cfg
	s.mu.RUnlock()
	if cfg != nil {
		return cfg, nil
	}
	return s.configs.GetConfig(ctx)
}
