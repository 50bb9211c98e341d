package ws281x

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnsupportedDrivers(t *testing.T) {
	for _, dt := range []DriverType{DriverPCM, DriverSPI} {
		_, err := New(dt)
		assert.ErrorIs(t, err, ErrDriverNotSupported)
	}

	c, err := New(DriverPWM)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), c.dmaChannel)
	assert.Equal(t, uint32(800000), c.frequency)
	assert.Equal(t, uint32(255), c.channel.brightness)
}

func TestConfigSetters(t *testing.T) {
	c, err := New(DriverPWM)
	require.NoError(t, err)

	assert.ErrorIs(t, c.SetFrequency(1000000), ErrWrongFrequency)
	require.NoError(t, c.SetFrequency(400000))
	assert.Equal(t, uint32(400000), c.frequency)

	require.NoError(t, c.SetDMAChannel(5))
	assert.Equal(t, uint32(5), c.dmaChannel)

	assert.ErrorIs(t, c.SetGamma(0), ErrWrongGamma)
	require.NoError(t, c.SetGamma(2))
	assert.Equal(t, uint8(64), c.gamma[128])

	c.SetBrightness(40)
	assert.Equal(t, uint32(40), c.channel.brightness)
}

func TestConfigLockedAfterInitialize(t *testing.T) {
	c, err := New(DriverPWM)
	require.NoError(t, err)
	c.initialized = true

	assert.ErrorIs(t, c.SetFrequency(800000), ErrConfigInitialized)
	assert.ErrorIs(t, c.SetDMAChannel(4), ErrConfigInitialized)
	assert.ErrorIs(t, c.SetStrip(fakeStrip{0}, 18, WS2812Strip, false), ErrConfigInitialized)
}

func TestSetStripRejectsNonPWMPins(t *testing.T) {
	c, err := New(DriverPWM)
	require.NoError(t, err)

	assert.ErrorIs(t, c.SetStrip(fakeStrip{0}, 17, WS2812Strip, false), ErrPinNotAllowed)
	assert.False(t, c.channel.active)
}

func TestInitializeWithoutStrip(t *testing.T) {
	c, err := New(DriverPWM)
	require.NoError(t, err)

	assert.ErrorIs(t, c.Initialize(), ErrNoActiveChannel)
	assert.ErrorIs(t, c.Render(), ErrNoActiveChannel)
	assert.NoError(t, c.Stop())
}

func TestPWMAltMode(t *testing.T) {
	for _, pin := range []uint32{12, 18, 40} {
		_, err := pwmAltMode(pin)
		assert.NoError(t, err, "gpio %d", pin)
	}
	_, err := pwmAltMode(13)
	assert.ErrorIs(t, err, ErrPinNotAllowed)
}

// fakeDevice records transfers and fails close with closeErr.
type fakeDevice struct {
	writes    [][]uint32
	transfers []uint32
	closeErr  error
	closed    int
}

func (f *fakeDevice) write(words []uint32) {
	f.writes = append(f.writes, append([]uint32(nil), words...))
}

func (f *fakeDevice) transfer(channel uint32) {
	f.transfers = append(f.transfers, channel)
}

func (f *fakeDevice) close() error {
	f.closed++
	return f.closeErr
}

func TestStopKeepsStateWhenCloseFails(t *testing.T) {
	t.Cleanup(func() { pwmActive = false })
	c, err := New(DriverPWM)
	require.NoError(t, err)
	busy := errors.New("unmap failed")
	dev := &fakeDevice{closeErr: busy}
	c.dev = dev
	c.initialized = true
	pwmActive = true

	assert.ErrorIs(t, c.Stop(), busy)
	assert.True(t, c.initialized)
	assert.True(t, pwmActive)
	assert.Same(t, dev, c.dev)

	assert.ErrorIs(t, c.Stop(), busy, "a second Stop retries the close")
	assert.Equal(t, 2, dev.closed)

	dev.closeErr = nil
	require.NoError(t, c.Stop())
	assert.False(t, c.initialized)
	assert.False(t, pwmActive)
	assert.Nil(t, c.dev)
	assert.Equal(t, 3, dev.closed)

	require.NoError(t, c.Stop())
	assert.Equal(t, 3, dev.closed)
}

func TestRenderSendsEncodedWords(t *testing.T) {
	c, err := New(DriverPWM)
	require.NoError(t, err)
	require.NoError(t, c.SetDMAChannel(5))
	c.channel.attach(fakeStrip{0x00ff0000}, WS2812Strip, false)
	dev := &fakeDevice{}
	c.dev = dev
	c.words = make([]uint32, dataWords(1, WS2812Strip))
	c.initialized = true

	require.NoError(t, c.Render())

	require.Len(t, dev.writes, 1)
	want := make([]uint32, len(c.words))
	encode(&c.channel, &c.gamma, want)
	assert.Equal(t, want, dev.writes[0])
	assert.Equal(t, []uint32{5}, dev.transfers)
}
