package order

import "time"

// Tracking carries the shipment tracking details of an order: carrier,
// tracking number, and the estimated/actual delivery timestamps. Every field
// is optional; the zero value means "no tracking information yet".
//
// Tracking is a value object updated by non-destructive merging: a patch
// only overwrites the fields it actually supplies.
type Tracking struct {
	carrier           string
	trackingNumber    string
	estimatedDelivery *time.Time
	actualDelivery    *time.Time
}

// NewTracking builds a tracking value. Any subset of fields may be set;
// nil timestamps mean "not supplied".
func NewTracking(carrier, trackingNumber string, estimatedDelivery, actualDelivery *time.Time) Tracking {
	return Tracking{
		carrier:           carrier,
		trackingNumber:    trackingNumber,
		estimatedDelivery: copyTime(estimatedDelivery),
		actualDelivery:    copyTime(actualDelivery),
	}
}

// Carrier returns the carrier name, empty if unknown.
func (t Tracking) Carrier() string {
	return t.carrier
}

// TrackingNumber returns the carrier tracking number, empty if unknown.
func (t Tracking) TrackingNumber() string {
	return t.trackingNumber
}

// EstimatedDelivery returns the estimated delivery time, nil if unknown.
func (t Tracking) EstimatedDelivery() *time.Time {
	return copyTime(t.estimatedDelivery)
}

// ActualDelivery returns the confirmed delivery time, nil if unknown.
func (t Tracking) ActualDelivery() *time.Time {
	return copyTime(t.actualDelivery)
}

// IsZero reports whether no tracking field is set.
func (t Tracking) IsZero() bool {
	return t.carrier == "" && t.trackingNumber == "" &&
		t.estimatedDelivery == nil && t.actualDelivery == nil
}

// Merge applies a partial update: fields present in patch overwrite, absent
// fields preserve their prior values. The receiver is not modified.
func (t Tracking) Merge(patch Tracking) Tracking {
	merged := t
	if patch.carrier != "" {
		merged.carrier = patch.carrier
	}
	if patch.trackingNumber != "" {
		merged.trackingNumber = patch.trackingNumber
	}
	if patch.estimatedDelivery != nil {
		merged.estimatedDelivery = copyTime(patch.estimatedDelivery)
	}
	if patch.actualDelivery != nil {
		merged.actualDelivery = copyTime(patch.actualDelivery)
	}
	return merged
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
