package ws281x

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/DerLukas15/rpigpio"
	"github.com/DerLukas15/rpihardware"
	"github.com/DerLukas15/rpimemmap"
	"github.com/pkg/errors"
)

const (
	registerClockBusOffset uint32 = 0x00101000
	registerDMABusOffset   uint32 = 0x00007000
	registerPWMBusOffset   uint32 = 0x0020c000

	//Clock register offsets and values
	registerOffsetClkPwmCtl   uint32 = 0xa0
	registerOffsetClkPwmDiv   uint32 = 0xa4
	registerValueClkPasswd    uint32 = 0x5a000000 // Password used by the clock registers
	registerValueClkCtlSrcOsc uint32 = (1 << 0)   // Source from oscillator
	registerValueClkCtlEnab   uint32 = (1 << 4)
	registerValueClkCtlKill   uint32 = (1 << 5)
	registerValueClkCtlBusy   uint32 = (1 << 7)

	//DMA register offsets and values
	registerOffsetDmaCs                     uint32 = 0x00
	registerOffsetDmaConblkAd               uint32 = 0x04
	registerOffsetDmaDebug                  uint32 = 0x20
	registerOffsetDmaEnable                 uint32 = 0xff0
	registerValueDmaCsReset                 uint32 = (1 << 31)
	registerValueDmaCsWaitOutstandingWrites uint32 = (1 << 28)
	registerValueDmaCsInt                   uint32 = (1 << 2)
	registerValueDmaCsEnd                   uint32 = (1 << 1)
	registerValueDmaCsActive                uint32 = (1 << 0)

	//DMA control block layout and transfer information
	registerOffsetDmaCBTi             uint32 = 0 * 4
	registerOffsetDmaCBSrcAddress     uint32 = 1 * 4
	registerOffsetDmaCBDestAddress    uint32 = 2 * 4
	registerOffsetDmaCBTransferLength uint32 = 3 * 4
	registerOffsetDmaCB2DModeStride   uint32 = 4 * 4
	registerOffsetDmaCBNextCBAddress  uint32 = 5 * 4
	registerValueDmaCBTiWaitResp      uint32 = 1 << 3
	registerValueDmaCBTiDestDreq      uint32 = 1 << 6
	registerValueDmaCBTiSrcInc        uint32 = 1 << 8
	registerValueDmaCBTiNoWideBursts  uint32 = 1 << 26

	//PWM register offsets and values
	registerOffsetPWMCtl     uint32 = 0x00
	registerOffsetPWMSta     uint32 = 0x04
	registerOffsetPWMDmac    uint32 = 0x08
	registerOffsetPWMRng1    uint32 = 0x10
	registerOffsetPWMFif1    uint32 = 0x18
	registerValuePWMDmacEnab uint32 = (1 << 31)
	registerValuePWMCtlPwen1 uint32 = (1 << 0)
	registerValuePWMCtlMode1 uint32 = (1 << 1)
	registerValuePWMCtlPola1 uint32 = (1 << 4)
	registerValuePWMCtlUsef1 uint32 = (1 << 5)
	registerValuePWMCtlClrf1 uint32 = (1 << 6)
	registerValuePWMStaSta1  uint32 = (1 << 9)
	registerValuePWMStaBerr  uint32 = (1 << 8)

	// Permap of the PWM peripheral for DREQ paced transfers
	dmaPermapPWM uint32 = 5
)

var (
	registerValueClkDivDivi = func(val uint32) uint32 { return ((val & 0xfff) << 12) }

	registerValueDmaCsPanicPriority = func(val uint32) uint32 { return ((val & 0xf) << 20) }
	registerValueDmaCsPriority      = func(val uint32) uint32 { return ((val & 0xf) << 16) }
	registerValueDmaCBTiPermap      = func(val uint32) uint32 { return ((val & 0x1f) << 16) }
	registerOffsetDmaChannel        = func(ch uint32, r uint32) uint32 { return ch*0x100 + r }

	registerValuePWMDmacPanic = func(val uint32) uint32 { return ((val & 0xff) << 8) }
	registerValuePWMDmacDreq  = func(val uint32) uint32 { return ((val & 0xff) << 0) }
)

// Alternate pin functions which route PWM channel 0 to a GPIO.
var pwmPins = map[uint32]rpigpio.Mode{
	12: rpigpio.ModeAlternate0,
	18: rpigpio.ModeAlternate5,
	40: rpigpio.ModeAlternate0,
}

func pwmAltMode(pin uint32) (rpigpio.Mode, error) {
	mode, ok := pwmPins[pin]
	if !ok {
		return 0, errors.Wrap(ErrPinNotAllowed, fmt.Sprintf("gpio %d", pin))
	}
	return mode, nil
}

//pwmDevice holds the memory mappings of the peripherals used for one PWM output.
type pwmDevice struct {
	hw    *rpihardware.Hardware
	clock rpimemmap.MemMap
	dma   rpimemmap.MemMap
	pwm   rpimemmap.MemMap
	data  rpimemmap.MemMap // uncached PWM symbol words
	cb    rpimemmap.MemMap // uncached DMA control block
	words uint32
}

func openPWMDevice(hw *rpihardware.Hardware) (*pwmDevice, error) {
	d := &pwmDevice{hw: hw}
	var err error
	if d.clock, err = mapPeripheral(registerClockBusOffset); err != nil {
		return nil, errors.Wrap(err, "map clock")
	}
	logOutput("Clock mapped", "mem", d.clock.String())
	if d.dma, err = mapPeripheral(registerDMABusOffset); err != nil {
		d.close()
		return nil, errors.Wrap(err, "map dma")
	}
	logOutput("DMA mapped", "mem", d.dma.String())
	if d.pwm, err = mapPeripheral(registerPWMBusOffset); err != nil {
		d.close()
		return nil, errors.Wrap(err, "map pwm")
	}
	logOutput("PWM mapped", "mem", d.pwm.String())
	return d, nil
}

func mapPeripheral(offset uint32) (rpimemmap.MemMap, error) {
	mem := rpimemmap.NewPeripheral(uint32(os.Getpagesize()))
	if err := mem.Map(offset, rpimemmap.MemDevDefault, 0); err != nil {
		return nil, err
	}
	return mem, nil
}

func (d *pwmDevice) mapUncached(size uint32) (rpimemmap.MemMap, error) {
	mem := rpimemmap.NewUncached(size)
	allocationFlags := rpimemmap.UncachedMemFlagDirect
	if d.hw.RPiType == rpihardware.RPiType1 {
		allocationFlags = 0xc
	}
	if err := mem.Map(0, "", allocationFlags); err != nil {
		return nil, err
	}
	return mem, nil
}

func (d *pwmDevice) reg(mem rpimemmap.MemMap, offset uint32) *uint32 {
	return rpimemmap.Reg32(mem, offset)
}

//setupClock runs the PWM clock at pwmBitsPerOutputBit times the strip frequency.
func (d *pwmDevice) setupClock(frequency uint32) {
	d.stopClock()
	*d.reg(d.clock, registerOffsetClkPwmDiv) = registerValueClkPasswd | registerValueClkDivDivi(d.hw.OscFreq/(pwmBitsPerOutputBit*frequency))
	*d.reg(d.clock, registerOffsetClkPwmCtl) = registerValueClkPasswd | registerValueClkCtlSrcOsc
	*d.reg(d.clock, registerOffsetClkPwmCtl) = registerValueClkPasswd | registerValueClkCtlSrcOsc | registerValueClkCtlEnab
	time.Sleep(10 * time.Microsecond)
	for (*d.reg(d.clock, registerOffsetClkPwmCtl) & registerValueClkCtlBusy) == 0 {
		time.Sleep(1 * time.Microsecond)
	}
	logOutput("PWM clock running")
}

func (d *pwmDevice) stopClock() {
	if d.clock == nil {
		return
	}
	*d.reg(d.clock, registerOffsetClkPwmCtl) = registerValueClkPasswd | registerValueClkCtlKill
	time.Sleep(10 * time.Microsecond)
	for (*d.reg(d.clock, registerOffsetClkPwmCtl) & registerValueClkCtlBusy) != 0 {
		time.Sleep(1 * time.Microsecond)
	}
}

func (d *pwmDevice) enableDMA(channel uint32) {
	*d.reg(d.dma, registerOffsetDmaEnable) |= (1 << channel)
}

//start configures the PWM serializer for ch and allocates the symbol buffer and DMA control block.
func (d *pwmDevice) start(ch *ledChannel, frequency uint32) error {
	d.setupClock(frequency)

	*d.reg(d.pwm, registerOffsetPWMRng1) = 32 //32 bits per word to serialize
	time.Sleep(10 * time.Microsecond)
	*d.reg(d.pwm, registerOffsetPWMCtl) = registerValuePWMCtlClrf1
	time.Sleep(10 * time.Microsecond)
	*d.reg(d.pwm, registerOffsetPWMDmac) = registerValuePWMDmacEnab | registerValuePWMDmacPanic(7) | registerValuePWMDmacDreq(3)
	time.Sleep(10 * time.Microsecond)
	ctl := registerValuePWMCtlUsef1 | registerValuePWMCtlMode1
	if ch.invert {
		ctl |= registerValuePWMCtlPola1
	}
	*d.reg(d.pwm, registerOffsetPWMCtl) = ctl
	time.Sleep(10 * time.Microsecond)
	*d.reg(d.pwm, registerOffsetPWMCtl) |= registerValuePWMCtlPwen1
	time.Sleep(10 * time.Microsecond)

	d.words = dataWords(ch.strip.TotalCount(), ch.stripType)
	var err error
	logOutput("Allocating PWM data", "bytes", d.words*4)
	if d.data, err = d.mapUncached(d.words * 4); err != nil {
		return errors.Wrap(err, "pwm data")
	}
	if d.cb, err = d.mapUncached(uint32(os.Getpagesize())); err != nil {
		return errors.Wrap(err, "dma control block")
	}
	*d.reg(d.cb, registerOffsetDmaCBTi) = registerValueDmaCBTiNoWideBursts | registerValueDmaCBTiWaitResp | registerValueDmaCBTiDestDreq | registerValueDmaCBTiSrcInc | registerValueDmaCBTiPermap(dmaPermapPWM)
	*d.reg(d.cb, registerOffsetDmaCBSrcAddress) = d.data.BusAddr()
	*d.reg(d.cb, registerOffsetDmaCBDestAddress) = d.pwm.BusAddr() + registerOffsetPWMFif1
	*d.reg(d.cb, registerOffsetDmaCBTransferLength) = d.words * 4
	*d.reg(d.cb, registerOffsetDmaCB2DModeStride) = 0
	*d.reg(d.cb, registerOffsetDmaCBNextCBAddress) = 0
	if Debug {
		logOutput(d.status())
	}
	return nil
}

//write copies the symbol words into the DMA source buffer.
func (d *pwmDevice) write(words []uint32) {
	for i, w := range words {
		*d.reg(d.data, uint32(i*4)) = w
	}
}

//transfer starts one DMA transfer of the symbol buffer on channel.
func (d *pwmDevice) transfer(channel uint32) {
	*d.reg(d.dma, registerOffsetDmaChannel(channel, registerOffsetDmaCs)) = registerValueDmaCsReset
	time.Sleep(10 * time.Microsecond)
	*d.reg(d.dma, registerOffsetDmaChannel(channel, registerOffsetDmaCs)) = registerValueDmaCsInt | registerValueDmaCsEnd
	time.Sleep(10 * time.Microsecond)
	*d.reg(d.dma, registerOffsetDmaChannel(channel, registerOffsetDmaConblkAd)) = d.cb.BusAddr()
	*d.reg(d.dma, registerOffsetDmaChannel(channel, registerOffsetDmaDebug)) = 7
	*d.reg(d.dma, registerOffsetDmaChannel(channel, registerOffsetDmaCs)) = registerValueDmaCsWaitOutstandingWrites |
		registerValueDmaCsPanicPriority(15) | registerValueDmaCsPriority(15)
	*d.reg(d.dma, registerOffsetDmaChannel(channel, registerOffsetDmaCs)) |= registerValueDmaCsActive
	time.Sleep(20 * time.Microsecond)
}

//close stops PWM and releases all mappings. The DMA channel stays enabled as another config might use it.
var _ device = (*pwmDevice)(nil)

func (d *pwmDevice) close() error {
	if d.pwm != nil {
		*d.reg(d.pwm, registerOffsetPWMCtl) = 0
	}
	d.stopClock()
	for _, mem := range []*rpimemmap.MemMap{&d.data, &d.cb, &d.pwm, &d.dma, &d.clock} {
		if *mem == nil {
			continue
		}
		if err := (*mem).Unmap(); err != nil {
			return errors.Wrap(err, "unmap")
		}
		*mem = nil
	}
	return nil
}

func (d *pwmDevice) status() string {
	if d.pwm == nil {
		return ""
	}
	sta := *d.reg(d.pwm, registerOffsetPWMSta)
	ctl := *d.reg(d.pwm, registerOffsetPWMCtl)
	var b strings.Builder
	fmt.Fprintf(&b, "PWM Status:\n")
	fmt.Fprintf(&b, "\tChan1: %t\n", sta&registerValuePWMStaSta1 != 0)
	fmt.Fprintf(&b, "\tBuserror: %t\n", sta&registerValuePWMStaBerr != 0)
	fmt.Fprintf(&b, "\tEnabled: %t\n", ctl&registerValuePWMCtlPwen1 != 0)
	fmt.Fprintf(&b, "\tUse Serialiser: %t\n", ctl&registerValuePWMCtlMode1 != 0)
	fmt.Fprintf(&b, "\tInverse: %t\n", ctl&registerValuePWMCtlPola1 != 0)
	fmt.Fprintf(&b, "\tUse Fifo: %t\n", ctl&registerValuePWMCtlUsef1 != 0)
	return b.String()
}
