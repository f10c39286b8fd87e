package axon_test

import (
	"testing"

	"github.com/centraunit/axon"
	"github.com/centraunit/axon/mock"
)

func BenchmarkResolveSingleton_Interpret(b *testing.B) {
	c := axon.New(serviceTable(b, axon.LifetimeSingleton))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := axon.GetRequired[*mock.Repository](c); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkResolveSingleton_Compile(b *testing.B) {
	c := axon.New(serviceTable(b, axon.LifetimeSingleton), axon.WithEngine(axon.NewCompileEngine()))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := axon.GetRequired[*mock.Repository](c); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkResolveTransient_Interpret(b *testing.B) {
	c := axon.New(serviceTable(b, axon.LifetimeTransient))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := axon.GetRequired[*mock.Repository](c); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkResolveTransient_Compile(b *testing.B) {
	c := axon.New(serviceTable(b, axon.LifetimeTransient), axon.WithEngine(axon.NewCompileEngine()))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := axon.GetRequired[*mock.Repository](c); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkResolveScoped_Compile(b *testing.B) {
	c := axon.New(serviceTable(b, axon.LifetimeScoped), axon.WithEngine(axon.NewCompileEngine()))
	scope, err := c.CreateScope()
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := axon.GetRequired[*mock.Repository](scope); err != nil {
			b.Fatal(err)
		}
	}
}
