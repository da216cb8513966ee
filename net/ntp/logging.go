package ntp

import (
	"go.uber.org/zap/zapcore"
)

type Time32Marshaler struct {
	T Time32
}

func (m Time32Marshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint16("Seconds", m.T.Seconds)
	enc.AddUint16("Fraction", m.T.Fraction)
	return nil
}

type Time64Marshaler struct {
	T Time64
}

func (m Time64Marshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint32("Seconds", m.T.Seconds)
	enc.AddUint32("Fraction", m.T.Fraction)
	return nil
}

type PacketMarshaler struct {
	Pkt *Packet
}

func (m PacketMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddUint8("LeapIndicator", m.Pkt.LeapIndicator())
	enc.AddUint8("Version", m.Pkt.Version())
	enc.AddUint8("Mode", m.Pkt.Mode())
	enc.AddUint8("Stratum", m.Pkt.Stratum)
	enc.AddInt8("Poll", m.Pkt.Poll)
	enc.AddInt8("Precision", m.Pkt.Precision)
	if err := enc.AddObject("RootDelay", Time32Marshaler{T: m.Pkt.RootDelay}); err != nil {
		return err
	}
	if err := enc.AddObject("RootDispersion", Time32Marshaler{T: m.Pkt.RootDispersion}); err != nil {
		return err
	}
	enc.AddUint32("ReferenceID", m.Pkt.ReferenceID)
	if err := enc.AddObject("ReferenceTime", Time64Marshaler{T: m.Pkt.ReferenceTime}); err != nil {
		return err
	}
	if err := enc.AddObject("OriginTime", Time64Marshaler{T: m.Pkt.OriginTime}); err != nil {
		return err
	}
	if err := enc.AddObject("ReceiveTime", Time64Marshaler{T: m.Pkt.ReceiveTime}); err != nil {
		return err
	}
	return enc.AddObject("TransmitTime", Time64Marshaler{T: m.Pkt.TransmitTime})
}
