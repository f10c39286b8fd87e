package axon_test

import (
	"testing"

	"github.com/centraunit/axon"
	"github.com/centraunit/axon/mock"
	"github.com/stretchr/testify/suite"
)

type CallSiteTestSuite struct {
	suite.Suite
}

func (s *CallSiteTestSuite) TestConstructorValidation() {
	key := keyOf[*mock.Database]()
	logger := mustConstructor(s.T(), axon.LifetimeSingleton, keyOf[*mock.Logger](), 0, mock.NewLogger)

	cases := map[string]struct {
		ctor any
		deps []axon.CallSite
	}{
		"not a function":      {ctor: "constructor"},
		"nil constructor":     {ctor: nil},
		"no return value":     {ctor: func(*mock.Logger) {}, deps: []axon.CallSite{logger}},
		"three return values": {ctor: func() (*mock.Database, *mock.Logger, error) { return nil, nil, nil }},
		"second not an error": {ctor: func() (*mock.Database, string) { return nil, "" }},
		"missing dependency":  {ctor: mock.NewDatabase},
		"extra dependency":    {ctor: mock.NewDatabase, deps: []axon.CallSite{logger, logger}},
		"dep not assignable":  {ctor: func(*mock.Conn) *mock.Database { return nil }, deps: []axon.CallSite{logger}},
		"wrong contract type": {ctor: mock.NewLogger, deps: nil},
	}

	for name, tc := range cases {
		s.Run(name, func() {
			_, err := axon.NewConstructor(axon.LifetimeTransient, key, 0, tc.ctor, tc.deps...)
			var invalid *axon.InvalidCallSiteError
			s.ErrorAs(err, &invalid)
			s.Equal(key, invalid.Service)
		})
	}
}

func (s *CallSiteTestSuite) TestConstructorAccessors() {
	logger := mustConstructor(s.T(), axon.LifetimeSingleton, keyOf[*mock.Logger](), 0, mock.NewLogger)
	db := mustConstructor(s.T(), axon.LifetimeScoped, keyOf[*mock.Database](), 0, mock.NewDatabase, logger)

	s.Equal(axon.KindConstructor, db.Kind())
	s.Equal(typeOf[*mock.Database](), db.ServiceType())
	s.Equal(typeOf[*mock.Database](), db.ImplementationType())
	s.Len(db.Dependencies(), 1)
	s.Equal(axon.CacheScope, db.Cache().Location)
	s.Equal(axon.CacheRoot, logger.Cache().Location)
}

func (s *CallSiteTestSuite) TestFactoryValidation() {
	_, err := axon.NewFactory(axon.LifetimeTransient, keyOf[*mock.Conn](), 0, nil)
	var invalid *axon.InvalidCallSiteError
	s.ErrorAs(err, &invalid)

	site := mustFactory(s.T(), axon.LifetimeTransient, keyOf[*mock.Conn](), 0,
		func(axon.Resolver) (any, error) { return &mock.Conn{}, nil })
	s.Equal(axon.KindFactory, site.Kind())
	s.Equal(axon.CacheDispose, site.Cache().Location)
}

func (s *CallSiteTestSuite) TestSliceValidation() {
	logger := mustConstructor(s.T(), axon.LifetimeSingleton, keyOf[*mock.Logger](), 0, mock.NewLogger)

	_, err := axon.NewSlice(typeOf[*mock.Conn](), nil, logger)
	var invalid *axon.InvalidCallSiteError
	s.ErrorAs(err, &invalid)

	site, err := axon.NewSlice(typeOf[*mock.Logger](), nil, logger)
	s.NoError(err)
	s.Equal(axon.KindSlice, site.Kind())
	s.Equal(typeOf[[]*mock.Logger](), site.ServiceType())
	s.Len(site.Items(), 1)
	s.Equal(axon.CacheNone, site.Cache().Location)
}

func (s *CallSiteTestSuite) TestConstantValidation() {
	conn := &mock.Conn{Name: "fixed"}
	site, err := axon.NewConstant(keyOf[*mock.Conn](), conn)
	s.NoError(err)
	s.Equal(axon.KindConstant, site.Kind())
	s.Same(conn, site.Value())
	s.Equal(axon.CacheNone, site.Cache().Location)

	_, err = axon.NewConstant(keyOf[*mock.Conn](), "not a conn")
	var invalid *axon.InvalidCallSiteError
	s.ErrorAs(err, &invalid)

	// A nil constant is a legal registration.
	empty, err := axon.NewConstant(keyOf[*mock.Conn](), nil)
	s.NoError(err)
	s.Nil(empty.Value())
}

func (s *CallSiteTestSuite) TestScopeCallSite() {
	site := axon.NewScopeCallSite()
	s.Equal(axon.KindScope, site.Kind())
	s.Equal(typeOf[axon.Resolver](), site.ServiceType())
	s.Equal(axon.CacheNone, site.Cache().Location)
}

func (s *CallSiteTestSuite) TestKindStrings() {
	s.Equal("constructor", axon.KindConstructor.String())
	s.Equal("factory", axon.KindFactory.String())
	s.Equal("slice", axon.KindSlice.String())
	s.Equal("scope", axon.KindScope.String())
	s.Equal("constant", axon.KindConstant.String())
}

func (s *CallSiteTestSuite) TestCacheLocationStrings() {
	s.Equal("root", axon.CacheRoot.String())
	s.Equal("scope", axon.CacheScope.String())
	s.Equal("dispose", axon.CacheDispose.String())
	s.Equal("none", axon.CacheNone.String())
}

func (s *CallSiteTestSuite) TestServiceKeyString() {
	s.Equal("*mock.Conn", keyOf[*mock.Conn]().String())
	keyed := axon.ServiceKey{Type: typeOf[*mock.Conn](), Key: "primary"}
	s.Equal("*mock.Conn(primary)", keyed.String())
}

func TestCallSiteSuite(t *testing.T) {
	suite.Run(t, new(CallSiteTestSuite))
}
