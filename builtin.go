package goinspect

import (
	"context"
	"math/big"
	"net"
	"os"
	"reflect"
	"time"
)

var (
	intKinds   = []reflect.Kind{reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64}
	uintKinds  = []reflect.Kind{reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr}
	floatKinds = []reflect.Kind{reflect.Float32, reflect.Float64}
	cplxKinds  = []reflect.Kind{reflect.Complex64, reflect.Complex128}
)

func registerBuiltinExtractors(e *Extractors) {
	for _, k := range intKinds {
		e.RegisterKind(k, ExtractorFunc(extractInt))
	}
	for _, k := range uintKinds {
		e.RegisterKind(k, ExtractorFunc(extractUint))
	}
	for _, k := range floatKinds {
		e.RegisterKind(k, ExtractorFunc(extractFloat))
	}
	for _, k := range cplxKinds {
		e.RegisterKind(k, ExtractorFunc(extractComplex))
	}
	e.RegisterKind(reflect.String, ExtractorFunc(extractString))
	e.RegisterKind(reflect.Pointer, ExtractorFunc(extractPointer))
	e.RegisterKind(reflect.Struct, ExtractorFunc(extractStruct))
	e.RegisterKind(reflect.Slice, ExtractorFunc(extractSlice))
	e.RegisterKind(reflect.Array, ExtractorFunc(extractArray))
	e.RegisterKind(reflect.Map, ExtractorFunc(extractMap))
	e.RegisterKind(reflect.Chan, ExtractorFunc(extractChan))
	e.RegisterKind(reflect.Func, ExtractorFunc(extractFunc))

	e.RegisterType(TypeOf[*Pair](), ExtractorFunc(extractPair))
	e.RegisterType(TypeOf[*big.Int](), ExtractorFunc(extractBigInt))
	e.RegisterType(TypeOf[*big.Rat](), ExtractorFunc(extractBigRat))
	e.RegisterType(TypeOf[*big.Float](), ExtractorFunc(extractBigFloat))
	e.RegisterType(TypeOf[time.Duration](), ExtractorFunc(extractDuration))
	e.RegisterType(TypeOf[time.Time](), ExtractorFunc(extractTime))
	e.RegisterType(TypeOf[*os.File](), ExtractorFunc(extractFile))

	e.RegisterTrait("enum", isEnumType, ExtractorFunc(extractEnum))
	e.RegisterTrait("error", Implements[error](), ExtractorFunc(extractError))
	e.RegisterTrait("context", Implements[context.Context](), ExtractorFunc(extractContext))
	e.RegisterTrait("net-conn", Implements[net.Conn](), ExtractorFunc(extractConn))
	e.RegisterTrait("io", isIOHandle, ExtractorFunc(extractIOHandle))
}

func registerBuiltinDescribers(d *Describers) {
	for _, k := range intKinds {
		d.RegisterKind(k, DescriberFunc(describeInt))
	}
	for _, k := range uintKinds {
		d.RegisterKind(k, DescriberFunc(describeUint))
	}
	for _, k := range floatKinds {
		d.RegisterKind(k, DescriberFunc(describeFloat))
	}
	for _, k := range cplxKinds {
		d.RegisterKind(k, DescriberFunc(describeComplex))
	}
	d.RegisterKind(reflect.Bool, DescriberFunc(describeBool))
	d.RegisterKind(reflect.String, DescriberFunc(describeString))
	d.RegisterKind(reflect.Pointer, DescriberFunc(describePointer))
	d.RegisterKind(reflect.Struct, DescriberFunc(describeStruct))
	d.RegisterKind(reflect.Slice, DescriberFunc(describeSlice))
	d.RegisterKind(reflect.Array, DescriberFunc(describeArray))
	d.RegisterKind(reflect.Map, DescriberFunc(describeMap))
	d.RegisterKind(reflect.Chan, DescriberFunc(describeChan))
	d.RegisterKind(reflect.Func, DescriberFunc(describeFunc))

	d.RegisterType(TypeOf[*Pair](), DescriberFunc(describePair))
	d.RegisterType(TypeOf[*big.Int](), DescriberFunc(describeBigInt))
	d.RegisterType(TypeOf[*big.Rat](), DescriberFunc(describeBigRat))
	d.RegisterType(TypeOf[*big.Float](), DescriberFunc(describeBigFloat))
	d.RegisterType(TypeOf[time.Duration](), DescriberFunc(describeDuration))
	d.RegisterType(TypeOf[time.Time](), DescriberFunc(describeTime))
	d.RegisterType(TypeOf[*os.File](), DescriberFunc(describeFile))

	d.RegisterTrait("enum", isEnumType, DescriberFunc(describeEnum))
	d.RegisterTrait("error", Implements[error](), DescriberFunc(describeError))
	d.RegisterTrait("context", Implements[context.Context](), DescriberFunc(describeContext))
}
