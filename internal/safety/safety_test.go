package safety

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		command string
		want    Level
	}{
		// system
		{"sudo apt-get update -qq", System},
		{"apt-get -y install cmake check", System},
		{"apt-get install python-software-properties", System},
		{"add-apt-repository --yes ppa:kalakris/cmake", System},
		{"brew install fftw", System},
		{"make install", System},
		{"make -j4 install", System},
		{"ldconfig", System},
		{"pip install -r requirements.txt", System},
		{"pip3 install -r requirements.txt", System},
		{"python setup.py install", System},
		{"python setup.py develop", System},

		// local
		{"apt-get update -qq", Local},
		{"git submodule update --init", Local},
		{"mkdir -p build", Local},
		{"cmake ../", Local},
		{"make", Local},
		{"make -j8", Local},
		{"brew list fftw", Local},
		{"pip install --user -r requirements.txt", Local},
		{"pip install --target=vendor six", Local},
		{"python setup.py develop --user", Local},
		{"python setup.py build", Local},
		{"pseudo-tool run", Local},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			if got := Classify(tt.command); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.command, got, tt.want)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	if Local.String() != "local" {
		t.Errorf("Local.String() = %q", Local.String())
	}
	if System.String() != "system" {
		t.Errorf("System.String() = %q", System.String())
	}
}
