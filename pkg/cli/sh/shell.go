// Package sh provides an interactive inspector for running radios.
package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/nrfduo/pkg/nrf24"
)

// Target is what the shell inspects.
type Target struct {
	Devices []*nrf24.Device
	Setups  map[string]nrf24.Setup
	// Stats returns counters to display, keyed by name.
	Stats func() map[string]interface{}
}

// Device looks a device up by name.
func (t *Target) Device(name string) (*nrf24.Device, error) {
	for _, d := range t.Devices {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, fmt.Errorf("unknown device %q", name)
}

func (t *Target) selected(args []string) ([]*nrf24.Device, error) {
	if len(args) == 0 {
		return t.Devices, nil
	}
	d, err := t.Device(args[0])
	if err != nil {
		return nil, err
	}
	return []*nrf24.Device{d}, nil
}

// RegValue is one register read back from a chip.
type RegValue struct {
	Reg   string `json:"reg"`
	Value string `json:"value"`
	Info  string `json:"info,omitempty"`
}

// ReadRegs reads every known register of d.
func ReadRegs(d *nrf24.Device) ([]RegValue, error) {
	regs := make([]RegValue, 0, len(nrf24.Registers))
	for _, r := range nrf24.Registers {
		v, err := ReadReg(d, r)
		if err != nil {
			return nil, err
		}
		regs = append(regs, v)
	}
	return regs, nil
}

// ReadReg reads a register of d.
func ReadReg(d *nrf24.Device, r nrf24.Reg) (RegValue, error) {
	if r.IsAddress() {
		addr, _, err := d.ReadAddr(r)
		if err != nil {
			return RegValue{}, err
		}
		return RegValue{Reg: r.String(), Value: fmt.Sprintf("%x", addr[:])}, nil
	}
	val, _, err := d.ReadReg(r)
	if err != nil {
		return RegValue{}, err
	}
	return RegValue{Reg: r.String(), Value: fmt.Sprintf("%02x", val), Info: nrf24.Describe(r, val)}, nil
}

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool

	Shell  *ishell.Shell
	Target *Target
}

const shellKey = "$shell"

var (
	evalOnly   bool
	outputJSON bool

	commands = []*ishell.Cmd{
		&DevicesCmd,
		&RegsCmd,
		&RegCmd,
		&StatusCmd,
		&PlanCmd,
		&StatsCmd,
	}
)

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// New creates a new shell.
func New(t *Target) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Target: t,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt("nrfduo > ")
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Print prints v as JSON in JSON mode, otherwise using text.
func (s *Shell) Print(c *ishell.Context, v interface{}, text func() string) {
	if s.OutputJSON {
		out, err := json.Marshal(v)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(out))
		return
	}
	c.Print(text())
}

// Run processes args as a single command, or runs the interactive shell.
func (s *Shell) Run(args ...string) error {
	if len(args) > 0 {
		return s.Shell.Process(args...)
	}
	if s.Interactive {
		s.Shell.Run()
		return nil
	}
	return fmt.Errorf("command expected")
}

// Close stops the interactive shell.
func (s *Shell) Close() {
	s.Shell.Close()
}

func formatRegs(name string, regs []RegValue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n", name)
	for _, r := range regs {
		fmt.Fprintf(&b, "  %-12s %-10s %s\n", r.Reg, r.Value, r.Info)
	}
	return b.String()
}

var (
	// DevicesCmd lists devices.
	DevicesCmd = ishell.Cmd{
		Name:    "devices",
		Aliases: []string{"ls"},
		Help:    "list radios",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			names := make([]string, len(s.Target.Devices))
			for n, d := range s.Target.Devices {
				names[n] = d.Name
			}
			s.Print(c, names, func() string { return strings.Join(names, "\n") + "\n" })
		},
	}

	// RegsCmd dumps registers.
	RegsCmd = ishell.Cmd{
		Name: "regs",
		Help: "[DEVICE] dump all registers",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			devs, err := s.Target.selected(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			all := make(map[string][]RegValue)
			for _, d := range devs {
				regs, err := ReadRegs(d)
				if err != nil {
					c.Err(err)
					return
				}
				all[d.Name] = regs
			}
			s.Print(c, all, func() string {
				var b strings.Builder
				for _, d := range devs {
					b.WriteString(formatRegs(d.Name, all[d.Name]))
				}
				return b.String()
			})
		},
	}

	// RegCmd reads one register.
	RegCmd = ishell.Cmd{
		Name: "reg",
		Help: "DEVICE REG read one register",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) != 2 {
				c.Err(fmt.Errorf("usage: reg DEVICE REG"))
				return
			}
			d, err := s.Target.Device(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			r, ok := nrf24.ParseReg(c.Args[1])
			if !ok {
				c.Err(fmt.Errorf("unknown register %q", c.Args[1]))
				return
			}
			v, err := ReadReg(d, r)
			if err != nil {
				c.Err(err)
				return
			}
			s.Print(c, v, func() string { return fmt.Sprintf("%s = %s %s\n", v.Reg, v.Value, v.Info) })
		},
	}

	// StatusCmd shows STATUS via NOP.
	StatusCmd = ishell.Cmd{
		Name:    "status",
		Aliases: []string{"st"},
		Help:    "[DEVICE] show STATUS",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			devs, err := s.Target.selected(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			status := make(map[string]string)
			for _, d := range devs {
				stat, err := d.NOP()
				if err != nil {
					c.Err(err)
					return
				}
				status[d.Name] = stat.String()
			}
			s.Print(c, status, func() string {
				var b strings.Builder
				for _, d := range devs {
					fmt.Fprintf(&b, "%s: %s\n", d.Name, status[d.Name])
				}
				return b.String()
			})
		},
	}

	// PlanCmd prints the bring-up register plan.
	PlanCmd = ishell.Cmd{
		Name: "plan",
		Help: "[DEVICE] show bring-up register writes",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			names := make([]string, 0, len(s.Target.Setups))
			for name := range s.Target.Setups {
				if len(c.Args) == 0 || c.Args[0] == name {
					names = append(names, name)
				}
			}
			sort.Strings(names)
			plans := make(map[string][]RegValue)
			for _, name := range names {
				plans[name] = PlanOf(s.Target.Setups[name])
			}
			s.Print(c, plans, func() string {
				var b strings.Builder
				for _, name := range names {
					b.WriteString(formatRegs(name, plans[name]))
				}
				return b.String()
			})
		},
	}

	// StatsCmd prints counters.
	StatsCmd = ishell.Cmd{
		Name: "stats",
		Help: "show counters",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if s.Target.Stats == nil {
				c.Err(fmt.Errorf("no stats"))
				return
			}
			stats := s.Target.Stats()
			s.Print(c, stats, func() string {
				keys := make([]string, 0, len(stats))
				for k := range stats {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				var b strings.Builder
				for _, k := range keys {
					fmt.Fprintf(&b, "%s: %+v\n", k, stats[k])
				}
				return b.String()
			})
		},
	}
)

// PlanOf lists every register write of a bring-up in order.
func PlanOf(s nrf24.Setup) []RegValue {
	plan := s.Plan()
	regs := make([]RegValue, 0, len(plan)+2)
	for _, rv := range plan {
		regs = append(regs, RegValue{Reg: rv.Reg.String(), Value: fmt.Sprintf("%02x", rv.Val), Info: nrf24.Describe(rv.Reg, rv.Val)})
	}
	cfg := s.Config()
	regs = append(regs,
		RegValue{Reg: nrf24.CONFIG.String(), Value: fmt.Sprintf("%02x", byte(cfg)), Info: cfg.String()},
		RegValue{Reg: s.PipeAddrReg().String(), Value: fmt.Sprintf("%x", s.Address[:])})
	return regs
}
